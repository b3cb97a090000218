package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/delivery/http/middleware"
	"careconnect-api/internal/usecase"
	"careconnect-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistrationUsecase struct {
	mock.Mock
}

func (m *MockRegistrationUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, req, image, imageHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorResponse), args.Error(1)
}

func (m *MockRegistrationUsecase) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationUsecase) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockRegistrationUsecase) GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorResponse), args.Error(1)
}

func (m *MockRegistrationUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, doctorID, req, image, imageHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorResponse), args.Error(1)
}

func (m *MockRegistrationUsecase) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockRegistrationUsecase) ResetPassword(ctx context.Context, email, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestVerifyOTP_Verified(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	mockUC.On("VerifyOTP", mock.Anything, "asha.rao@example.com", "123456").Return(true, nil)

	body, _ := json.Marshal(dto.VerifyOTPRequest{Email: "asha.rao@example.com", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/doctor/auth/verify-otp", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "OTP verified", env.Message)
	mockUC.AssertExpectations(t)
}

func TestVerifyOTP_Mismatch(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	mockUC.On("VerifyOTP", mock.Anything, "asha.rao@example.com", "000000").Return(false, nil)

	body, _ := json.Marshal(dto.VerifyOTPRequest{Email: "asha.rao@example.com", OTP: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/doctor/auth/verify-otp", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid OTP", env.Message)
}

func TestVerifyOTP_RejectsShortCode(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	body, _ := json.Marshal(dto.VerifyOTPRequest{Email: "asha.rao@example.com", OTP: "123"})
	req := httptest.NewRequest(http.MethodPost, "/doctor/auth/verify-otp", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "VerifyOTP")
}

func TestResendOTP(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	mockUC.On("ResendOTP", mock.Anything, "asha.rao@example.com").Return(nil)

	body, _ := json.Marshal(dto.ResendOTPRequest{Email: "asha.rao@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/doctor/auth/resend-otp", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ResendOTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "OTP resend", env.Message)
	mockUC.AssertExpectations(t)
}

func TestResendOTP_UnknownAccount(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	mockUC.On("ResendOTP", mock.Anything, "nobody@example.com").Return(usecase.ErrAccountNotFound)

	body, _ := json.Marshal(dto.ResendOTPRequest{Email: "nobody@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/doctor/auth/resend-otp", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ResendOTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_MultipartPayload(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	payload := map[string]interface{}{
		"full_name":        "Dr. Asha Rao",
		"email":            "asha.rao@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"specializations":  []string{"Cardiology"},
		"degree":           "MD",
		"institution":      "AIIMS Delhi",
		"graduation_year":  2008,
		"clinics":          []map[string]string{{"clinic_name": "HeartCare Clinic", "city": "Mumbai"}},
		"availability":     []map[string]string{{"day_of_week": "Monday", "start_time": "09:00", "end_time": "13:00"}},
		"consultation_fees": []map[string]interface{}{
			{"mode": "In-person", "fee": 500, "currency": "INR"},
		},
	}
	data, _ := json.Marshal(payload)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("data", string(data)))
	require.NoError(t, mw.Close())

	mockUC.On("RegisterDoctor", mock.Anything, mock.AnythingOfType("*dto.RegisterDoctorRequest"), mock.Anything, mock.Anything).
		Return(&dto.DoctorResponse{ID: uuid.New(), Email: "asha.rao@example.com"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/doctor/profile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	mockUC.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	mockUC.On("RegisterDoctor", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, usecase.ErrEmailAlreadyExists)

	body := validRegisterBody(t)
	req := httptest.NewRequest(http.MethodPost, "/doctor/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func validRegisterBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"full_name":        "Dr. Asha Rao",
		"email":            "asha.rao@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"specializations":  []string{"Cardiology"},
		"degree":           "MD",
		"institution":      "AIIMS Delhi",
		"graduation_year":  2008,
		"clinics":          []map[string]string{{"clinic_name": "HeartCare Clinic", "city": "Mumbai"}},
		"availability":     []map[string]string{{"day_of_week": "Monday", "start_time": "09:00", "end_time": "13:00"}},
		"consultation_fees": []map[string]interface{}{
			{"mode": "In-person", "fee": 500, "currency": "INR"},
		},
	})
	require.NoError(t, err)
	return body
}

func TestUpdateProfileByID_RejectsOtherDoctor(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	caller := uuid.New()
	target := uuid.New()

	body, err := json.Marshal(map[string]string{"biography": "Updated bio"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/doctor/profile/"+target.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": target.String()})
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, caller))
	rec := httptest.NewRecorder()

	h.UpdateProfileByID(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockUC.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfileByID_OwnProfile(t *testing.T) {
	mockUC := new(MockRegistrationUsecase)
	h := NewDoctorHandler(mockUC, validator.NewValidator())

	doctorID := uuid.New()
	mockUC.On("UpdateProfile", mock.Anything, doctorID, mock.Anything, mock.Anything, mock.Anything).
		Return(&dto.DoctorResponse{ID: doctorID, Biography: "Updated bio"}, nil)

	body, err := json.Marshal(map[string]string{"biography": "Updated bio"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/doctor/profile/"+doctorID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req = mux.SetURLVars(req, map[string]string{"id": doctorID.String()})
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, doctorID))
	rec := httptest.NewRecorder()

	h.UpdateProfileByID(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	mockUC.AssertExpectations(t)
}
