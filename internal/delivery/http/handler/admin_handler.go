package handler

import (
	"math"
	"net/http"
	"strconv"

	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/usecase"
	"careconnect-api/pkg/response"
	"careconnect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) *response.Meta {
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// CreateUser handles admin-side user creation
// @Summary Create a user account
// @Description Create a pre-verified user account. Accepts multipart/form-data with a "data" JSON field and an optional "profileImage" file.
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminCreateUserRequest
	image, imageHeader, err := decodePayload(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.CreateUser(r.Context(), &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrMissingCredentials:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// UpdateUser handles admin-side user updates
// @Summary Update a user account
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.AdminUpdateUserRequest
	image, imageHeader, err := decodePayload(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.UpdateUser(r.Context(), userID, &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// CreateDoctor handles admin-side doctor creation
// @Summary Create a doctor account
// @Description Create a pre-verified doctor with its professional profile. Accepts multipart/form-data with a "data" JSON field and an optional "profileImage" file.
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/doctors [post]
func (h *AdminHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminCreateDoctorRequest
	image, imageHeader, err := decodePayload(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.CreateDoctor(r.Context(), &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrMissingCredentials:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidGraduationYear, usecase.ErrUnknownSpecialization,
			usecase.ErrInvalidExpertiseArea, usecase.ErrNegativeFee:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// UpdateDoctor handles admin-side doctor updates
// @Summary Update a doctor account
// @Tags Admin
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/doctors/{id} [put]
func (h *AdminHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.AdminUpdateDoctorRequest
	image, imageHeader, err := decodePayload(r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if image != nil {
		defer image.Close()
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.UpdateDoctor(r.Context(), doctorID, &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidGraduationYear, usecase.ErrUnknownSpecialization,
			usecase.ErrInvalidExpertiseArea, usecase.ErrNegativeFee:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// BlockUser handles blocking a user account
// @Summary Block a user
// @Description Block the account and revoke its active tokens
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/block [patch]
func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.adminUsecase.BlockUser(r.Context(), userID); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to block user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User blocked successfully", nil)
}

// UnblockUser handles unblocking a user account
// @Summary Unblock a user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/unblock [patch]
func (h *AdminHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.adminUsecase.UnblockUser(r.Context(), userID); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to unblock user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User unblocked successfully", nil)
}

// GetAllUsers handles listing user accounts
// @Summary List users
// @Description List users with optional name/email search and pagination
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or email"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	search := r.URL.Query().Get("search")

	users, total, err := h.adminUsecase.GetAllUsers(r.Context(), search, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users, paginationMeta(page, limit, total))
}

// GetAuditLogs handles listing the audit trail
// @Summary List audit logs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AdminHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	logs, total, err := h.adminUsecase.GetAuditLogs(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs, paginationMeta(page, limit, total))
}
