package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
)

type PasswordResetRepository interface {
	// Create stores a new token digest for the user. Callers delete any prior
	// token first so at most one live token exists per user.
	Create(ctx context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) (*domain.PasswordReset, error)
	FindByTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.PasswordReset, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id int64) error
}
