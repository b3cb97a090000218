package repository

import (
	"context"

	"careconnect-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	// FindByID returns (nil, nil) when no patient matches
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
}
