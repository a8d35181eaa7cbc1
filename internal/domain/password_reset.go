package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is the stored half of a one-time reset token. Only the SHA-256
// digest of the secret is persisted; the raw secret leaves the system exactly
// once, inside the reset email.
type PasswordReset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TokenHash []byte    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
