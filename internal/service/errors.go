package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailDelivery      = errors.New("email not sent, please try again")

	ErrProductNotFound = errors.New("product not found")
	ErrNotAuthorized   = errors.New("user not authorized")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
