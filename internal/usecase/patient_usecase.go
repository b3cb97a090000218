package usecase

import (
	"context"
	"errors"
	"time"

	"careconnect-api/internal/converter"
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
	"careconnect-api/internal/domain/repository"
	"careconnect-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrFutureDateOfBirth = errors.New("date of birth cannot be in the future")
	ErrPatientNotOwned   = errors.New("patient does not belong to this account")
)

// PatientUsecase manages the dependents of a plain-user account.
// Deletion is intentionally not supported.
type PatientUsecase interface {
	CreatePatient(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, ownerID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, ownerID, patientID uuid.UUID) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, ownerID uuid.UUID) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func parseDateOfBirth(value string) (time.Time, error) {
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if dob.After(time.Now()) {
		return time.Time{}, ErrFutureDateOfBirth
	}
	return dob, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		UserID:           ownerID,
		Name:             req.Name,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		BloodGroup:       req.BloodGroup,
		Address:          req.Address,
		PhoneNumber:      req.PhoneNumber,
		EmergencyContact: req.EmergencyContact,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &ownerID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, ownerID, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.UserID != ownerID {
		return nil, ErrPatientNotOwned
	}

	oldValue := converter.PatientToResponse(patient)

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.DateOfBirth != "" {
		dob, err := parseDateOfBirth(req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.EmergencyContact != "" {
		patient.EmergencyContact = req.EmergencyContact
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, &ownerID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, ownerID, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.UserID != ownerID {
		return nil, ErrPatientNotOwned
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, ownerID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
