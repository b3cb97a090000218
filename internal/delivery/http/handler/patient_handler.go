package handler

import (
	"encoding/json"
	"net/http"

	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/delivery/http/middleware"
	"careconnect-api/internal/usecase"
	"careconnect-api/pkg/response"
	"careconnect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// CreatePatient handles creating a patient record for the authenticated user
// @Summary Create a patient
// @Description Create a patient record (self or dependent) tied to the authenticated account
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), ownerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrFutureDateOfBirth:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// UpdatePatient handles updating an owned patient record
// @Summary Update a patient
// @Tags Patient
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), ownerID, patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrPatientNotOwned:
			response.Forbidden(w, "Patient does not belong to this account")
		case usecase.ErrInvalidDateFormat, usecase.ErrFutureDateOfBirth:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// GetPatient handles fetching an owned patient record
// @Summary Get a patient
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), ownerID, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrPatientNotOwned:
			response.Forbidden(w, "Patient does not belong to this account")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// ListPatients handles listing the authenticated user's patient records
// @Summary List patients
// @Tags Patient
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patients, err := h.patientUsecase.ListPatients(r.Context(), ownerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
