package http

import (
	"time"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Message string `json:"message" example:"invalid email or password"`
}

// AuthUser models the sanitized user representation returned by auth endpoints.
type AuthUser struct {
	ID        string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name      string    `json:"name" example:"Mahesh"`
	Email     string    `json:"email" example:"user@example.com"`
	Photo     string    `json:"photo" example:"https://i.ibb.co/4pDNDK1/avatar.png"`
	Phone     string    `json:"phone" example:"+91-9876543210"`
	Bio       string    `json:"bio" example:"Inventory manager"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

// AuthTokenResponse is returned by endpoints that issue session tokens.
type AuthTokenResponse struct {
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser `json:"user"`
}

// AuthUserResponse wraps a user object.
type AuthUserResponse struct {
	User AuthUser `json:"user"`
}

// SuccessResponse carries a human-readable confirmation.
type SuccessResponse struct {
	Message string `json:"message" example:"password reset successful, please login"`
}

// RegisterRequest carries registration fields.
type RegisterRequest struct {
	Name     string `json:"name" example:"Mahesh"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// LoginRequest carries login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// UpdateProfileRequest captures the patchable profile fields. Absent fields
// keep their stored values; email is not patchable.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" example:"Mahesh"`
	Phone *string `json:"phone,omitempty" example:"+91-9876543210"`
	Photo *string `json:"photo,omitempty" example:"https://cdn.example.com/avatar.png"`
	Bio   *string `json:"bio,omitempty" example:"Inventory manager"`
}

// ChangePasswordRequest captures the payload for password updates.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"OldPass!23"`
	Password    string `json:"password" example:"NewPass!45"`
}

// ForgotPasswordRequest captures the payload for requesting a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// ResetPasswordRequest captures the new password for a reset confirmation. The
// one-time token travels in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password" example:"NewPass!45"`
}

func buildAuthUser(user *domain.User) AuthUser {
	return AuthUser{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Photo:     user.Photo,
		Phone:     user.Phone,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
