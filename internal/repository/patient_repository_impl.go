package repository

import (
	"context"
	"errors"

	"careconnect-api/internal/domain/entity"
	domainRepo "careconnect-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}
