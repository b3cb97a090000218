package repository

import (
	"context"

	"careconnect-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	// Create persists the profile together with its user and child
	// collections in one transaction
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	// FindByUserID returns (nil, nil) when no profile exists
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	// Replace* delete all existing children of the doctor and insert the
	// supplied set atomically
	ReplaceClinics(ctx context.Context, doctorID uuid.UUID, clinics []entity.Clinic) error
	ReplaceAvailability(ctx context.Context, doctorID uuid.UUID, slots []entity.Availability) error
	ReplaceConsultationFees(ctx context.Context, doctorID uuid.UUID, fees []entity.ConsultationFee) error
}
