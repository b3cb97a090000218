package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"careconnect-api/config"
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
	"careconnect-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type registrationFixture struct {
	store      *fakeStore
	codes      *fakeCodeStore
	mailer     *fakeMailer
	doctorRepo *fakeDoctorRepo
	uc         RegistrationUsecase
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	store := newFakeStore()
	codes := newFakeCodeStore()
	mailer := newFakeMailer()
	doctorRepo := &fakeDoctorRepo{store: store}

	log := logrus.New()
	log.SetOutput(io.Discard)

	uc := NewRegistrationUsecase(
		log,
		&fakeUserRepo{store: store},
		doctorRepo,
		codes,
		mailer,
		fakeFileStorage{},
		service.NewAuditService(log, &fakeAuditRepo{store: store}),
		config.OTPConfig{TTL: 5 * time.Minute},
		config.AppConfig{ResetPasswordURL: "https://careconnect.example.com/reset-password"},
	)

	return &registrationFixture{
		store:      store,
		codes:      codes,
		mailer:     mailer,
		doctorRepo: doctorRepo,
		uc:         uc,
	}
}

func validRegisterRequest() *dto.RegisterDoctorRequest {
	return &dto.RegisterDoctorRequest{
		FullName:        "Dr. Asha Rao",
		Email:           "asha.rao@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		PhoneNumber:     "08123456789",
		Biography:       "Fifteen years of cardiac care.",
		Languages:       []string{"English", "Hindi"},
		Specializations: []string{"Cardiology"},
		ExpertiseAreas:  []string{"Heart Failure"},
		Degree:          "MD",
		Institution:     "AIIMS Delhi",
		GraduationYear:  2008,
		HospitalStints: []dto.HospitalStintRequest{
			{Hospital: "Apollo Hospital", Period: "2008-2015"},
		},
		Clinics: []dto.ClinicRequest{
			{ClinicName: "HeartCare Clinic", City: "Mumbai"},
		},
		Availability: []dto.AvailabilityRequest{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "13:00"},
		},
		ConsultationFees: []dto.ConsultationFeeRequest{
			{Mode: entity.ConsultationModeInPerson, Fee: decimal.NewFromInt(500), Currency: "INR"},
		},
	}
}

func TestRegisterDoctor_Success(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	doctor, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, doctor)

	assert.Equal(t, "asha.rao@example.com", doctor.Email)
	assert.False(t, doctor.IsVerified)
	assert.Equal(t, string(entity.UserStatusActive), doctor.Status)
	assert.Len(t, doctor.Clinics, 1)
	assert.Len(t, doctor.Availability, 1)
	assert.Len(t, doctor.ConsultationFees, 1)

	// A code went out and is redeemable
	code := f.mailer.lastCode("asha.rao@example.com")
	require.Len(t, code, 6)

	stored, err := f.codes.Get(ctx, "otp:asha.rao@example.com")
	require.NoError(t, err)
	assert.Equal(t, code, stored)
}

func TestRegisterDoctor_PasswordMismatch(t *testing.T) {
	f := newRegistrationFixture(t)

	req := validRegisterRequest()
	req.ConfirmPassword = "different"

	_, err := f.uc.RegisterDoctor(context.Background(), req, nil, nil)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// Nothing persisted, nothing mailed
	assert.Empty(t, f.store.users)
	assert.Empty(t, f.mailer.codes)
}

func TestRegisterDoctor_DuplicateEmail(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	_, err = f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterDoctor_ProfessionalFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterDoctorRequest)
		wantErr error
	}{
		{
			name: "future graduation year",
			mutate: func(r *dto.RegisterDoctorRequest) {
				r.GraduationYear = time.Now().Year() + 1
			},
			wantErr: ErrInvalidGraduationYear,
		},
		{
			name: "unknown specialization",
			mutate: func(r *dto.RegisterDoctorRequest) {
				r.Specializations = []string{"Alchemy"}
			},
			wantErr: ErrUnknownSpecialization,
		},
		{
			name: "expertise outside chosen specializations",
			mutate: func(r *dto.RegisterDoctorRequest) {
				r.ExpertiseAreas = []string{"Stroke"} // Neurology area, not Cardiology
			},
			wantErr: ErrInvalidExpertiseArea,
		},
		{
			name: "negative consultation fee",
			mutate: func(r *dto.RegisterDoctorRequest) {
				r.ConsultationFees[0].Fee = decimal.NewFromInt(-100)
			},
			wantErr: ErrNegativeFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture(t)
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := f.uc.RegisterDoctor(context.Background(), req, nil, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.store.users)
		})
	}
}

func TestVerifyOTP_Success(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)
	code := f.mailer.lastCode("asha.rao@example.com")

	verified, err := f.uc.VerifyOTP(ctx, "asha.rao@example.com", code)
	require.NoError(t, err)
	assert.True(t, verified)

	user, err := (&fakeUserRepo{store: f.store}).FindByEmail(ctx, "asha.rao@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// The code is consumed; a replay no longer verifies
	verified, err = f.uc.VerifyOTP(ctx, "asha.rao@example.com", code)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyOTP_WrongCodeLeavesCodeUsable(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)
	code := f.mailer.lastCode("asha.rao@example.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	verified, err := f.uc.VerifyOTP(ctx, "asha.rao@example.com", wrong)
	require.NoError(t, err)
	assert.False(t, verified)

	// A mismatch does not consume the stored code
	verified, err = f.uc.VerifyOTP(ctx, "asha.rao@example.com", code)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)
	code := f.mailer.lastCode("asha.rao@example.com")

	f.codes.advance(5*time.Minute + time.Second)

	verified, err := f.uc.VerifyOTP(ctx, "asha.rao@example.com", code)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestResendOTP_InvalidatesPreviousCode(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)
	firstCode := f.mailer.lastCode("asha.rao@example.com")

	require.NoError(t, f.uc.ResendOTP(ctx, "asha.rao@example.com"))
	secondCode := f.mailer.lastCode("asha.rao@example.com")

	if firstCode != secondCode {
		verified, err := f.uc.VerifyOTP(ctx, "asha.rao@example.com", firstCode)
		require.NoError(t, err)
		assert.False(t, verified, "stale code must not verify")
	}

	verified, err := f.uc.VerifyOTP(ctx, "asha.rao@example.com", secondCode)
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestResendOTP_UnknownEmail(t *testing.T) {
	f := newRegistrationFixture(t)

	err := f.uc.ResendOTP(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateProfile_PartialScalarMerge(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	created, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	updated, err := f.uc.UpdateProfile(ctx, created.ID, &dto.UpdateDoctorProfileRequest{
		Biography: "Updated biography",
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Updated biography", updated.Biography)
	// Untouched scalars survive the update
	assert.Equal(t, "Dr. Asha Rao", updated.FullName)
	assert.Equal(t, "MD", updated.Degree)
	assert.Len(t, updated.Clinics, 1)
}

func TestUpdateProfile_ReplacesCollectionsWholesale(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	created, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	newClinics := []dto.ClinicRequest{
		{ClinicName: "North Clinic", City: "Delhi"},
		{ClinicName: "South Clinic", City: "Chennai"},
	}

	updated, err := f.uc.UpdateProfile(ctx, created.ID, &dto.UpdateDoctorProfileRequest{
		Clinics: &newClinics,
	}, nil, nil)
	require.NoError(t, err)

	require.Len(t, updated.Clinics, 2)
	assert.Equal(t, "North Clinic", updated.Clinics[0].ClinicName)
	// Omitted collections stay untouched
	assert.Len(t, updated.Availability, 1)
	assert.Len(t, updated.ConsultationFees, 1)
}

func TestUpdateProfile_ReplaceFailurePropagates(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	created, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	f.doctorRepo.replaceErr = errors.New("deadlock detected")

	newClinics := []dto.ClinicRequest{{ClinicName: "North Clinic", City: "Delhi"}}
	_, err = f.uc.UpdateProfile(ctx, created.ID, &dto.UpdateDoctorProfileRequest{
		Clinics: &newClinics,
	}, nil, nil)
	require.Error(t, err)

	// The stored collection is still the original one
	profile, err := f.doctorRepo.FindByUserID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, profile.Clinics, 1)
	assert.Equal(t, "HeartCare Clinic", profile.Clinics[0].ClinicName)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.uc.UpdateProfile(context.Background(), uuid.New(), &dto.UpdateDoctorProfileRequest{}, nil, nil)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestForgotPassword_SendsResetLink(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.uc.ForgotPassword(ctx, "asha.rao@example.com"))

	links := f.mailer.resetLinks["asha.rao@example.com"]
	require.Len(t, links, 1)
	assert.Equal(t, "https://careconnect.example.com/reset-password?email=asha.rao%40example.com", links[0])
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	f := newRegistrationFixture(t)

	err := f.uc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResetPassword_OverwritesCredential(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	_, err := f.uc.RegisterDoctor(ctx, validRegisterRequest(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.uc.ResetPassword(ctx, "asha.rao@example.com", "newsecret456"))

	user, err := (&fakeUserRepo{store: f.store}).FindByEmail(ctx, "asha.rao@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret456")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestGenerateOTP_SixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
