package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"net/url"
	"time"

	"careconnect-api/config"
	"careconnect-api/internal/converter"
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
	"careconnect-api/internal/domain/repository"
	"careconnect-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch      = errors.New("password and confirm password do not match")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrAccountNotFound       = errors.New("account not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrInvalidGraduationYear = errors.New("graduation year cannot be in the future")
	ErrUnknownSpecialization = errors.New("unknown specialization")
	ErrInvalidExpertiseArea  = errors.New("expertise area does not belong to the chosen specializations")
	ErrNegativeFee           = errors.New("consultation fee cannot be negative")
)

const otpKeyPrefix = "otp:"

// RegistrationUsecase drives the self-service doctor lifecycle: account
// creation, email verification through a one-time code, profile updates
// and the password recovery flow.
type RegistrationUsecase interface {
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error)
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
	ResendOTP(ctx context.Context, email string) error
	GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type registrationUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	codeStore    service.CodeStore
	mailer       service.Mailer
	storage      service.FileStorage
	auditService service.AuditService
	otpTTL       time.Duration
	resetURL     string
}

func NewRegistrationUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	codeStore service.CodeStore,
	mailer service.Mailer,
	storage service.FileStorage,
	auditService service.AuditService,
	otpCfg config.OTPConfig,
	appCfg config.AppConfig,
) RegistrationUsecase {
	return &registrationUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		codeStore:    codeStore,
		mailer:       mailer,
		storage:      storage,
		auditService: auditService,
		otpTTL:       otpCfg.TTL,
		resetURL:     appCfg.ResetPasswordURL,
	}
}

func otpKey(email string) string {
	return otpKeyPrefix + email
}

// generateOTP draws a uniform 6-digit numeric code from [100000, 999999]
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (u *registrationUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if err := validateProfessionalFields(req.Specializations, req.ExpertiseAreas, req.GraduationYear, req.ConsultationFees); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var profileImage *string
	if image != nil && imageHeader != nil {
		imageURL, err := u.storage.Upload(ctx, image, imageHeader)
		if err != nil {
			u.log.Warnf("Failed to upload profile image: %+v", err)
			return nil, err
		}
		profileImage = &imageURL
	}

	// The user, the profile and the child collections persist as one
	// aggregate; a failure anywhere rolls the whole registration back
	profile := &entity.DoctorProfile{
		Biography:        req.Biography,
		Languages:        entity.StringArray(req.Languages),
		Specializations:  entity.StringArray(req.Specializations),
		ExpertiseAreas:   entity.StringArray(req.ExpertiseAreas),
		Degree:           req.Degree,
		Institution:      req.Institution,
		GraduationYear:   req.GraduationYear,
		HospitalStints:   stintsFromRequests(req.HospitalStints),
		Clinics:          clinicsFromRequests(req.Clinics),
		Availability:     availabilityFromRequests(req.Availability),
		ConsultationFees: feesFromRequests(req.ConsultationFees),
		User: entity.User{
			Email:        req.Email,
			Password:     string(hashedPassword),
			FullName:     req.FullName,
			PhoneNumber:  req.PhoneNumber,
			ProfileImage: profileImage,
			RoleID:       entity.RoleIDDoctor,
			IsVerified:   false,
			Status:       entity.UserStatusActive,
		},
	}

	if err := u.doctorRepo.Create(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := u.issueOTP(ctx, req.Email); err != nil {
		return nil, err
	}

	// Audit failure must not abort the registration
	if err := u.auditService.LogCreate(ctx, &profile.UserID, entity.AuditActionDoctorRegister, "doctor_profile", profile.UserID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// issueOTP stores a fresh verification code under the email key and mails it
func (u *registrationUsecase) issueOTP(ctx context.Context, email string) error {
	code, err := generateOTP()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}

	if err := u.codeStore.Set(ctx, otpKey(email), code, u.otpTTL); err != nil {
		u.log.Warnf("Failed to store OTP: %+v", err)
		return err
	}

	if err := u.mailer.SendVerificationCode(ctx, email, code); err != nil {
		u.log.Warnf("Failed to send OTP mail: %+v", err)
		return err
	}

	return nil
}

// VerifyOTP compares the submitted code against the stored one. A match
// flips the account's verification flag and consumes the code; a mismatch
// leaves the stored code in place until it expires.
func (u *registrationUsecase) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	stored, err := u.codeStore.Get(ctx, otpKey(email))
	if err != nil {
		u.log.Warnf("Failed to read OTP: %+v", err)
		return false, err
	}
	if stored == "" || stored != code {
		return false, nil
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return false, err
	}
	if user == nil {
		return false, ErrAccountNotFound
	}

	user.IsVerified = true
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to mark account verified: %+v", err)
		return false, err
	}

	if err := u.codeStore.Del(ctx, otpKey(email)); err != nil {
		u.log.Warnf("Failed to delete consumed OTP: %+v", err)
	}

	if err := u.auditService.LogUpdate(ctx, &user.ID, entity.AuditActionDoctorVerify, "user", user.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return true, nil
}

// ResendOTP invalidates any outstanding code for the email and issues a
// fresh one
func (u *registrationUsecase) ResendOTP(ctx context.Context, email string) error {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}

	if err := u.codeStore.Del(ctx, otpKey(email)); err != nil {
		u.log.Warnf("Failed to delete previous OTP: %+v", err)
		return err
	}

	return u.issueOTP(ctx, email)
}

func (u *registrationUsecase) GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *registrationUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	// Partial scalar merge
	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		profile.User.PhoneNumber = req.PhoneNumber
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}
	if len(req.Languages) > 0 {
		profile.Languages = entity.StringArray(req.Languages)
	}
	if len(req.Specializations) > 0 {
		profile.Specializations = entity.StringArray(req.Specializations)
	}
	if len(req.ExpertiseAreas) > 0 {
		profile.ExpertiseAreas = entity.StringArray(req.ExpertiseAreas)
	}
	if req.Degree != "" {
		profile.Degree = req.Degree
	}
	if req.Institution != "" {
		profile.Institution = req.Institution
	}
	if req.GraduationYear != 0 {
		profile.GraduationYear = req.GraduationYear
	}
	if len(req.HospitalStints) > 0 {
		profile.HospitalStints = stintsFromRequests(req.HospitalStints)
	}

	var mergedFees []dto.ConsultationFeeRequest
	if req.ConsultationFees != nil {
		mergedFees = *req.ConsultationFees
	}
	if err := validateProfessionalFields(profile.Specializations, profile.ExpertiseAreas, profile.GraduationYear, mergedFees); err != nil {
		return nil, err
	}

	if image != nil && imageHeader != nil {
		imageURL, err := u.storage.Upload(ctx, image, imageHeader)
		if err != nil {
			u.log.Warnf("Failed to upload profile image: %+v", err)
			return nil, err
		}
		profile.User.ProfileImage = &imageURL
	}

	if err := u.doctorRepo.Update(ctx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	// A supplied collection replaces all existing children; an omitted one
	// stays untouched
	if req.Clinics != nil {
		if err := u.doctorRepo.ReplaceClinics(ctx, doctorID, clinicsFromRequests(*req.Clinics)); err != nil {
			u.log.Warnf("Failed to replace clinics: %+v", err)
			return nil, err
		}
	}
	if req.Availability != nil {
		if err := u.doctorRepo.ReplaceAvailability(ctx, doctorID, availabilityFromRequests(*req.Availability)); err != nil {
			u.log.Warnf("Failed to replace availability: %+v", err)
			return nil, err
		}
	}
	if req.ConsultationFees != nil {
		if err := u.doctorRepo.ReplaceConsultationFees(ctx, doctorID, feesFromRequests(*req.ConsultationFees)); err != nil {
			u.log.Warnf("Failed to replace consultation fees: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, &doctorID, entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	updated, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor profile: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(updated), nil
}

// ForgotPassword mails a reset link to the account's email address
func (u *registrationUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}

	resetLink := fmt.Sprintf("%s?email=%s", u.resetURL, url.QueryEscape(email))
	if err := u.mailer.SendPasswordReset(ctx, email, resetLink); err != nil {
		u.log.Warnf("Failed to send password reset mail: %+v", err)
		return err
	}

	return nil
}

// ResetPassword overwrites the stored credential with the hash of the new
// password. The reset link is informational only; no token is verified here.
func (u *registrationUsecase) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, &user.ID, entity.AuditActionPasswordReset, "user", user.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// validateProfessionalFields enforces the cross-field rules shared by
// registration and profile update
func validateProfessionalFields(specializations, expertiseAreas []string, graduationYear int, fees []dto.ConsultationFeeRequest) error {
	if graduationYear > time.Now().Year() {
		return ErrInvalidGraduationYear
	}
	for _, spec := range specializations {
		if !entity.IsKnownSpecialization(spec) {
			return ErrUnknownSpecialization
		}
	}
	for _, area := range expertiseAreas {
		if !entity.IsAllowedExpertise(area, specializations) {
			return ErrInvalidExpertiseArea
		}
	}
	for _, fee := range fees {
		if fee.Fee.IsNegative() {
			return ErrNegativeFee
		}
	}
	return nil
}

func clinicsFromRequests(reqs []dto.ClinicRequest) []entity.Clinic {
	clinics := make([]entity.Clinic, len(reqs))
	for i, r := range reqs {
		clinics[i] = entity.Clinic{
			ClinicName: r.ClinicName,
			Address:    r.Address,
			City:       r.City,
			State:      r.State,
			Country:    r.Country,
			PostalCode: r.PostalCode,
			Phone:      r.Phone,
		}
	}
	return clinics
}

func availabilityFromRequests(reqs []dto.AvailabilityRequest) []entity.Availability {
	slots := make([]entity.Availability, len(reqs))
	for i, r := range reqs {
		slots[i] = entity.Availability{
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		}
	}
	return slots
}

func feesFromRequests(reqs []dto.ConsultationFeeRequest) []entity.ConsultationFee {
	fees := make([]entity.ConsultationFee, len(reqs))
	for i, r := range reqs {
		fees[i] = entity.ConsultationFee{
			Mode:     r.Mode,
			Fee:      r.Fee,
			Currency: r.Currency,
		}
	}
	return fees
}

func stintsFromRequests(reqs []dto.HospitalStintRequest) entity.HospitalStints {
	stints := make(entity.HospitalStints, len(reqs))
	for i, r := range reqs {
		stints[i] = entity.HospitalStint{
			Hospital: r.Hospital,
			Period:   r.Period,
		}
	}
	return stints
}
