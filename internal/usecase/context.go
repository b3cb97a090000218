package usecase

import (
	"context"

	"careconnect-api/internal/delivery/http/middleware"

	"github.com/google/uuid"
)

// actorID returns the authenticated user ID from the request context for
// audit attribution, or nil for unauthenticated flows
func actorID(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
