package handler

import (
	"net/http"

	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/delivery/http/middleware"
	"careconnect-api/internal/usecase"
	"careconnect-api/pkg/response"
	"careconnect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	registrationUsecase usecase.RegistrationUsecase
	validator           *validator.CustomValidator
}

func NewDoctorHandler(registrationUsecase usecase.RegistrationUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		registrationUsecase: registrationUsecase,
		validator:           validator,
	}
}

// Register handles doctor self-registration
// @Summary Register a new doctor
// @Description Register a doctor with credentials, professional profile, clinics, availability and fees. Accepts multipart/form-data with a "data" JSON field and an optional "profileImage" file.
// @Tags Doctor
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /doctor/profile [post]
func (h *DoctorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
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

	doctor, err := h.registrationUsecase.RegisterDoctor(r.Context(), &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrPasswordMismatch:
			response.Error(w, http.StatusBadRequest, "Passwords do not match", nil)
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidGraduationYear, usecase.ErrUnknownSpecialization,
			usecase.ErrInvalidExpertiseArea, usecase.ErrNegativeFee:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to register doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor registered successfully", doctor)
}

// VerifyOTP handles OTP verification after registration
// @Summary Verify OTP
// @Description Verify the code emailed to the doctor during registration
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Verify OTP Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/auth/verify-otp [post]
func (h *DoctorHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if _, _, err := decodePayload(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	verified, err := h.registrationUsecase.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to verify OTP")
		}
		return
	}

	if !verified {
		response.Error(w, http.StatusBadRequest, "Invalid OTP", nil)
		return
	}

	response.Success(w, http.StatusOK, "OTP verified", nil)
}

// ResendOTP handles OTP re-issue
// @Summary Resend OTP
// @Description Invalidate the outstanding OTP and email a fresh one
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.ResendOTPRequest true "Resend OTP Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/auth/resend-otp [post]
func (h *DoctorHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendOTPRequest
	if _, _, err := decodePayload(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.registrationUsecase.ResendOTP(r.Context(), req.Email); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to resend OTP")
		}
		return
	}

	response.Success(w, http.StatusOK, "OTP resend", nil)
}

// GetProfile handles fetching the authenticated doctor's profile
// @Summary Get own doctor profile
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/profile [get]
func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.respondWithProfile(w, r, userID)
}

// GetProfileByID handles fetching a doctor profile by ID
// @Summary Get doctor profile by ID
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/profile/{id} [get]
func (h *DoctorHandler) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	h.respondWithProfile(w, r, doctorID)
}

func (h *DoctorHandler) respondWithProfile(w http.ResponseWriter, r *http.Request, doctorID uuid.UUID) {
	doctor, err := h.registrationUsecase.GetProfile(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", doctor)
}

// UpdateProfile handles partial profile updates by the authenticated doctor
// @Summary Update own doctor profile
// @Description Update profile fields; omitted fields keep their values, supplied collections replace the stored ones wholesale. Accepts multipart/form-data with a "data" JSON field and an optional "profileImage" file.
// @Tags Doctor
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.updateProfile(w, r, userID)
}

// UpdateProfileByID handles partial profile updates addressed by doctor ID.
// The path ID must match the authenticated doctor.
// @Summary Update a doctor profile by ID
// @Description Update profile fields for the doctor identified by the path ID. Same merge semantics as the self-update endpoint.
// @Tags Doctor
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /doctor/profile/{id} [put]
func (h *DoctorHandler) UpdateProfileByID(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	if doctorID != userID {
		response.Forbidden(w, "Profile does not belong to this account")
		return
	}

	h.updateProfile(w, r, doctorID)
}

func (h *DoctorHandler) updateProfile(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req dto.UpdateDoctorProfileRequest
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

	doctor, err := h.registrationUsecase.UpdateProfile(r.Context(), userID, &req, image, imageHeader)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidGraduationYear, usecase.ErrUnknownSpecialization,
			usecase.ErrInvalidExpertiseArea, usecase.ErrNegativeFee:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", doctor)
}

// ForgotPassword handles password reset requests
// @Summary Request password reset
// @Description Email a password reset link to the account
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/auth/forgot-password [post]
func (h *DoctorHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if _, _, err := decodePayload(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.registrationUsecase.ForgotPassword(r.Context(), req.Email); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to send reset email")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword handles setting a new password
// @Summary Reset password
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/auth/reset-password [post]
func (h *DoctorHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if _, _, err := decodePayload(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.registrationUsecase.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to reset password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password reset successfully", nil)
}
