package repository

import (
	"context"

	"careconnect-api/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.AuditLog, int64, error)
}
