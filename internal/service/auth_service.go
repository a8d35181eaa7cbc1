package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/ports"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)

// PasswordResetSender delivers the reset URL to the user. The raw secret is
// embedded in the URL and exists nowhere else.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, name, resetURL string) error
}

type AuthService struct {
	users  ports.UserRepository
	resets ports.PasswordResetRepository
	mailer PasswordResetSender
	jwt    *util.JWTManager

	frontendBaseURL string
	resetTTL        time.Duration
}

// AuthResult bundles the authenticated user with a freshly issued session
// token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(
	users ports.UserRepository,
	resets ports.PasswordResetRepository,
	mailer PasswordResetSender,
	jwtManager *util.JWTManager,
	frontendBaseURL string,
	resetTTL time.Duration,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	return &AuthService{
		users:           users,
		resets:          resets,
		mailer:          mailer,
		jwt:             jwtManager,
		frontendBaseURL: strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/"),
		resetTTL:        resetTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: please fill in all required fields", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: please enter a valid email", ErrValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, name, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: please add email and password", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// A failed verification must not mint a token.
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Authenticate resolves a session token to its user. Tokens are stateless;
// only the signature and expiry are checked before the user lookup.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// VerifyToken reports whether the token is currently valid, without touching
// the database. Backs the login-status endpoint.
func (s *AuthService) VerifyToken(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	_, err := s.jwt.Parse(token)
	return err == nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites name/phone/photo/bio when provided. The email is
// not part of the update path at all; attempted changes are silently ignored
// and the stored value is echoed back.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, photo, bio *string) (*domain.User, error) {
	if bio != nil && len(*bio) > domain.MaxBioLength {
		return nil, fmt.Errorf("%w: bio must not be more than %d characters", ErrValidation, domain.MaxBioLength)
	}

	user, err := s.users.UpdateProfile(ctx, id, trimPtr(name), trimPtr(phone), trimPtr(photo), bio)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: please add old and new password", ErrValidation)
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if !util.VerifyPassword(oldPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	return s.setPassword(ctx, user.ID, newPassword)
}

// RequestPasswordReset mints a one-time reset token for the account and mails
// the reset URL. Any prior token for the user is deleted first, so at most one
// token is live per user. A mail failure is reported to the caller but does
// not remove the freshly stored token; the next request supersedes it.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.resets.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	secret, err := util.NewResetSecret()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.resetTTL)

	if _, err := s.resets.Create(ctx, user.ID, util.HashResetSecret(secret), expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", s.frontendBaseURL, secret)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// ConfirmPasswordReset consumes a reset token. The presented secret is hashed
// with the same one-way function used at request time and looked up with its
// expiry. A used token is deleted before the call returns, success or not
// past that point; it can never be replayed.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, rawSecret, newPassword string) error {
	if strings.TrimSpace(rawSecret) == "" || newPassword == "" {
		return fmt.Errorf("%w: please provide token and password", ErrValidation)
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	reset, err := s.resets.FindByTokenHash(ctx, util.HashResetSecret(rawSecret), time.Now())
	if err != nil {
		if isNotFound(err) {
			return ErrResetTokenInvalid
		}
		return err
	}

	// The token is single-use from here on, whatever happens next.
	defer s.resets.DeleteByID(ctx, reset.ID)

	user, err := s.users.FindByID(ctx, reset.UserID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	return s.setPassword(ctx, user.ID, newPassword)
}

// setPassword is the single password-mutation path: it always re-hashes with
// a fresh salt, with no reliance on field-dirty tracking.
func (s *AuthService) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, salt)
}

func (s *AuthService) issueSession(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.jwt.TTL()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
