package repository

import (
	"context"

	"careconnect-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns (nil, nil) when no account matches
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Search returns a page of accounts matching the name/email substring
	// together with the total match count
	Search(ctx context.Context, search string, limit, offset int) ([]entity.User, int64, error)
}
