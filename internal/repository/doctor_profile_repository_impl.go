package repository

import (
	"context"
	"errors"

	"careconnect-api/internal/domain/entity"
	domainRepo "careconnect-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	// GORM association create persists the user, the profile and all
	// child collections within one transaction
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Clinics").
		Preload("Availability").
		Preload("ConsultationFees").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(ctx context.Context) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Preload("Clinics").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile.User).Error; err != nil {
			return err
		}
		return tx.Omit("Clinics", "Availability", "ConsultationFees").Save(profile).Error
	})
}

func (r *doctorProfileRepository) ReplaceClinics(ctx context.Context, doctorID uuid.UUID, clinics []entity.Clinic) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&entity.Clinic{}).Error; err != nil {
			return err
		}
		if len(clinics) == 0 {
			return nil
		}
		for i := range clinics {
			clinics[i].DoctorID = doctorID
		}
		return tx.Create(&clinics).Error
	})
}

func (r *doctorProfileRepository) ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, slots []entity.Availability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&entity.Availability{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].DoctorID = doctorID
		}
		return tx.Create(&slots).Error
	})
}

func (r *doctorProfileRepository) ReplaceConsultationFees(ctx context.Context, doctorID uuid.UUID, fees []entity.ConsultationFee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&entity.ConsultationFee{}).Error; err != nil {
			return err
		}
		if len(fees) == 0 {
			return nil
		}
		for i := range fees {
			fees[i].DoctorID = doctorID
		}
		return tx.Create(&fees).Error
	})
}
