package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"careconnect-api/internal/converter"
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
	"careconnect-api/internal/domain/repository"
	"careconnect-api/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrMissingCredentials = errors.New("email and password are required")

// AdminUsecase is the administrative account-management workflow. Accounts
// created here skip the OTP gate and are verified immediately.
type AdminUsecase interface {
	CreateUser(ctx context.Context, req *dto.AdminCreateUserRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *dto.AdminUpdateUserRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.UserResponse, error)
	CreateDoctor(ctx context.Context, req *dto.AdminCreateDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.AdminUpdateDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error)
	BlockUser(ctx context.Context, userID uuid.UUID) error
	UnblockUser(ctx context.Context, userID uuid.UUID) error
	GetAllUsers(ctx context.Context, search string, page, limit int) ([]dto.UserResponse, int64, error)
	GetAuditLogs(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, int64, error)
}

type adminUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	auditRepo    repository.AuditLogRepository
	storage      service.FileStorage
	auditService service.AuditService
	redisClient  *redis.Client
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditRepo repository.AuditLogRepository,
	storage service.FileStorage,
	auditService service.AuditService,
	redisClient *redis.Client,
) AdminUsecase {
	return &adminUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditRepo:    auditRepo,
		storage:      storage,
		auditService: auditService,
		redisClient:  redisClient,
	}
}

func (u *adminUsecase) uploadImage(ctx context.Context, image multipart.File, imageHeader *multipart.FileHeader) (*string, error) {
	if image == nil || imageHeader == nil {
		return nil, nil
	}
	imageURL, err := u.storage.Upload(ctx, image, imageHeader)
	if err != nil {
		u.log.Warnf("Failed to upload profile image: %+v", err)
		return nil, err
	}
	return &imageURL, nil
}

func (u *adminUsecase) CreateUser(ctx context.Context, req *dto.AdminCreateUserRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.UserResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	profileImage, err := u.uploadImage(ctx, image, imageHeader)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        req.Email,
		Password:     string(hashedPassword),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		ProfileImage: profileImage,
		RoleID:       entity.RoleIDUser,
		IsVerified:   true, // administrative creation skips the OTP gate
		Status:       entity.UserStatusActive,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, actorID(ctx), entity.AuditActionUserCreate, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) UpdateUser(ctx context.Context, userID uuid.UUID, req *dto.AdminUpdateUserRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	profileImage, err := u.uploadImage(ctx, image, imageHeader)
	if err != nil {
		return nil, err
	}
	if profileImage != nil {
		user.ProfileImage = profileImage
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, actorID(ctx), entity.AuditActionUserUpdate, "user", user.ID.String(), oldValue, converter.UserToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) CreateDoctor(ctx context.Context, req *dto.AdminCreateDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	if err := validateProfessionalFields(req.Specializations, nil, req.GraduationYear, nil); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	profileImage, err := u.uploadImage(ctx, image, imageHeader)
	if err != nil {
		return nil, err
	}

	profile := &entity.DoctorProfile{
		Biography:       req.Biography,
		Specializations: entity.StringArray(req.Specializations),
		Degree:          req.Degree,
		Institution:     req.Institution,
		GraduationYear:  req.GraduationYear,
		User: entity.User{
			Email:        req.Email,
			Password:     string(hashedPassword),
			FullName:     req.FullName,
			PhoneNumber:  req.PhoneNumber,
			ProfileImage: profileImage,
			RoleID:       entity.RoleIDDoctor,
			IsVerified:   true, // administrative creation skips the OTP gate
			Status:       entity.UserStatusActive,
		},
	}

	if err := u.doctorRepo.Create(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, actorID(ctx), entity.AuditActionDoctorCreate, "doctor_profile", profile.UserID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *adminUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.AdminUpdateDoctorRequest, image multipart.File, imageHeader *multipart.FileHeader) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Email != "" {
		profile.User.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		profile.User.Password = string(hashedPassword)
	}
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

	profileImage, err := u.uploadImage(ctx, image, imageHeader)
	if err != nil {
		return nil, err
	}
	if profileImage != nil {
		profile.User.ProfileImage = profileImage
	}

	if err := u.doctorRepo.Update(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	// Same replace-wholesale child semantics as the self-service flow
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

	if err := u.auditService.LogUpdate(ctx, actorID(ctx), entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	updated, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor profile: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(updated), nil
}

// BlockUser sets the account status to BLOCKED and revokes any live
// sessions. Blocking an already blocked account succeeds without change.
func (u *adminUsecase) BlockUser(ctx context.Context, userID uuid.UUID) error {
	return u.setStatus(ctx, userID, entity.UserStatusBlocked, entity.AuditActionUserBlock)
}

// UnblockUser restores the account status to ACTIVE. Idempotent.
func (u *adminUsecase) UnblockUser(ctx context.Context, userID uuid.UUID) error {
	return u.setStatus(ctx, userID, entity.UserStatusActive, entity.AuditActionUserUnblock)
}

func (u *adminUsecase) setStatus(ctx context.Context, userID uuid.UUID, status entity.UserStatus, action string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	oldStatus := user.Status
	user.Status = status
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user status: %+v", err)
		return err
	}

	if status == entity.UserStatusBlocked {
		u.revokeUserTokens(ctx, userID)
	}

	if err := u.auditService.LogUpdate(ctx, actorID(ctx), action, "user", userID.String(), string(oldStatus), string(status)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

// revokeUserTokens deletes every live token for the user so a block takes
// effect immediately. Failures are logged, not propagated; the status
// change is the operation's outcome.
func (u *adminUsecase) revokeUserTokens(ctx context.Context, userID uuid.UUID) {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to list token keys: %+v", err)
			continue
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete token keys: %+v", err)
			}
		}
	}
}

func (u *adminUsecase) GetAllUsers(ctx context.Context, search string, page, limit int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, total, err := u.userRepo.Search(ctx, search, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to search users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *adminUsecase) GetAuditLogs(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := u.auditRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, err
	}

	return converter.AuditLogsToResponses(logs), total, nil
}
