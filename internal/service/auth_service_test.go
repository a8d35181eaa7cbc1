package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*domain.User
	byMail map[string]*domain.User

	createErr       error
	findByEmailErr  error
	findByIDErr     error
	updatePwdErr    error
	updateProfile   []uuid.UUID
	updatedPassword []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   map[uuid.UUID]*domain.User{},
		byMail: map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) put(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[user.ID] = user
	f.byMail[user.Email] = user
}

func (f *fakeUserRepo) Create(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byMail[email]; exists {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		PasswordSalt: append([]byte(nil), passwordSalt...),
		Photo:        domain.DefaultPhotoURL,
		Phone:        domain.DefaultPhone,
		Bio:          domain.DefaultBio,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.byID[user.ID] = user
	f.byMail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.findByEmailErr != nil {
		return nil, f.findByEmailErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byMail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, photo, bio *string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateProfile = append(f.updateProfile, id)
	user, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if name != nil {
		user.Name = *name
	}
	if phone != nil {
		user.Phone = *phone
	}
	if photo != nil {
		user.Photo = *photo
	}
	if bio != nil {
		user.Bio = *bio
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedPassword = append(f.updatedPassword, id)
	user, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = append([]byte(nil), passwordHash...)
	user.PasswordSalt = append([]byte(nil), passwordSalt...)
	return nil
}

type fakePasswordResetRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.PasswordReset

	createErr     error
	deleteByUser  []uuid.UUID
	deletedTokens []int64
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{rows: map[int64]*domain.PasswordReset{}}
}

func (f *fakePasswordResetRepo) Create(ctx context.Context, userID uuid.UUID, tokenHash []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	reset := &domain.PasswordReset{
		ID:        f.nextID,
		UserID:    userID,
		TokenHash: append([]byte(nil), tokenHash...),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	f.rows[reset.ID] = reset
	return reset, nil
}

func (f *fakePasswordResetRepo) FindByTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reset := range f.rows {
		if bytes.Equal(reset.TokenHash, tokenHash) && reset.ExpiresAt.After(now) {
			clone := *reset
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePasswordResetRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByUser = append(f.deleteByUser, userID)
	for id, reset := range f.rows {
		if reset.UserID == userID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakePasswordResetRepo) DeleteByID(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedTokens = append(f.deletedTokens, id)
	delete(f.rows, id)
	return nil
}

func (f *fakePasswordResetRepo) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeResetMailer struct {
	sent []struct {
		email    string
		name     string
		resetURL string
	}
	err error
}

func (f *fakeResetMailer) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	f.sent = append(f.sent, struct {
		email    string
		name     string
		resetURL string
	}{email: email, name: name, resetURL: resetURL})
	return f.err
}

func (f *fakeResetMailer) lastSecret(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("no reset mail was sent")
	}
	url := f.sent[len(f.sent)-1].resetURL
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		t.Fatalf("reset URL %q has no secret segment", url)
	}
	return url[idx+1:]
}

func newAuthServiceForTests(users *fakeUserRepo, resets *fakePasswordResetRepo, mailer PasswordResetSender) *AuthService {
	if users == nil {
		users = newFakeUserRepo()
	}
	if resets == nil {
		resets = newFakePasswordResetRepo()
	}
	if mailer == nil {
		mailer = &fakeResetMailer{}
	}
	jwtManager := util.NewJWTManager("test-secret", 24*time.Hour)
	return NewAuthService(users, resets, mailer, jwtManager, "https://app.example.com/", 30*time.Minute)
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthServiceForTests(users, nil, nil)

	result, err := svc.Register(ctx, "Mahesh", " Mahesh@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User == nil || result.User.Email != "mahesh@example.com" {
		t.Fatalf("email should be normalized, got %+v", result.User)
	}
	if result.Token == "" {
		t.Fatal("expected session token in result")
	}
	if string(result.User.PasswordHash) == "secret1" {
		t.Fatal("raw password must never be stored")
	}
	if len(result.User.PasswordSalt) == 0 {
		t.Fatal("expected per-record salt to be stored")
	}

	authenticated, err := svc.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("expected issued token to authenticate, got %v", err)
	}
	if authenticated.ID != result.User.ID {
		t.Fatalf("token resolved to wrong user")
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTests(nil, nil, nil)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "missing name", userName: "", email: "a@x.com", password: "secret1"},
		{name: "missing email", userName: "A", email: "", password: "secret1"},
		{name: "missing password", userName: "A", email: "a@x.com", password: ""},
		{name: "short password", userName: "A", email: "a@x.com", password: "12345"},
		{name: "malformed email", userName: "A", email: "not-an-email", password: "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.userName, tc.email, tc.password); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthServiceForTests(users, nil, nil)

	if _, err := svc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(ctx, "B", "a@x.com", "another1"); !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestRegisterSamePasswordDifferentHashes(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthServiceForTests(users, nil, nil)

	a, err := svc.Register(ctx, "A", "a@x.com", "samepassword")
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.Register(ctx, "B", "b@x.com", "samepassword")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}
	if bytes.Equal(a.User.PasswordHash, b.User.PasswordHash) {
		t.Fatal("identical passwords must not share stored hashes")
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthServiceForTests(users, nil, nil)

	if _, err := svc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Token == "" {
			t.Fatal("expected session token")
		}
		if !result.ExpiresAt.After(time.Now()) {
			t.Fatal("expected token expiry in the future")
		}
	})

	t.Run("wrong password mints no token", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@x.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if result != nil {
			t.Fatal("failed login must not return a token")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Login(ctx, "nobody@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := svc.Login(ctx, "", ""); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTests(nil, nil, nil)

	if _, err := svc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := util.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestUpdateProfileIgnoresEmail(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthServiceForTests(users, nil, nil)

	result, err := svc.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "New Name"
	phone := "+91-9999999999"
	updated, err := svc.UpdateProfile(ctx, result.User.ID, &name, &phone, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "New Name" || updated.Phone != "+91-9999999999" {
		t.Fatalf("expected profile fields to change, got %+v", updated)
	}
	// There is no way to pass an email through this path at all; the stored
	// value must survive every update.
	if updated.Email != "a@x.com" {
		t.Fatalf("email must be immutable through profile updates, got %q", updated.Email)
	}
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTests(nil, nil, nil)

	long := strings.Repeat("x", domain.MaxBioLength+1)
	if _, err := svc.UpdateProfile(ctx, uuid.New(), nil, nil, nil, &long); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success re-hashes", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newAuthServiceForTests(users, nil, nil)
		result, err := svc.Register(ctx, "A", "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		oldHash := append([]byte(nil), result.User.PasswordHash...)

		if err := svc.ChangePassword(ctx, result.User.ID, "secret1", "newpass1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := users.byID[result.User.ID]
		if bytes.Equal(stored.PasswordHash, oldHash) {
			t.Fatal("expected stored hash to change")
		}
		if _, err := svc.Login(ctx, "a@x.com", "newpass1"); err != nil {
			t.Fatalf("login with new password failed: %v", err)
		}
		if _, err := svc.Login(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("old password must stop working, got %v", err)
		}
	})

	t.Run("wrong old password leaves hash untouched", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newAuthServiceForTests(users, nil, nil)
		result, err := svc.Register(ctx, "A", "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		oldHash := append([]byte(nil), result.User.PasswordHash...)

		if err := svc.ChangePassword(ctx, result.User.ID, "wrong-old", "newpass1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if len(users.updatedPassword) != 0 {
			t.Fatal("password update must not be attempted")
		}
		if !bytes.Equal(users.byID[result.User.ID].PasswordHash, oldHash) {
			t.Fatal("stored hash must be unchanged after failed attempt")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newAuthServiceForTests(nil, nil, nil)
		if err := svc.ChangePassword(ctx, uuid.New(), "", ""); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("short new password", func(t *testing.T) {
		svc := newAuthServiceForTests(nil, nil, nil)
		if err := svc.ChangePassword(ctx, uuid.New(), "secret1", "12345"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores digest and mails raw secret", func(t *testing.T) {
		users := newFakeUserRepo()
		resets := newFakePasswordResetRepo()
		mailer := &fakeResetMailer{}
		svc := newAuthServiceForTests(users, resets, mailer)

		result, err := svc.Register(ctx, "A", "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resets.deleteByUser) != 1 || resets.deleteByUser[0] != result.User.ID {
			t.Fatal("expected prior tokens to be deleted first")
		}
		if resets.live() != 1 {
			t.Fatalf("expected exactly one live token, got %d", resets.live())
		}

		secret := mailer.lastSecret(t)
		if len(secret) < 64 {
			t.Fatalf("expected at least 32 bytes of hex entropy, got %d chars", len(secret))
		}
		for _, reset := range resets.rows {
			if bytes.Contains(reset.TokenHash, []byte(secret)) {
				t.Fatal("raw secret must never be persisted")
			}
			if !util.ResetSecretMatches(secret, reset.TokenHash) {
				t.Fatal("mailed secret must hash to the stored digest")
			}
			remaining := time.Until(reset.ExpiresAt)
			if remaining < 29*time.Minute || remaining > 31*time.Minute {
				t.Fatalf("expected ~30 minute expiry, got %v", remaining)
			}
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newAuthServiceForTests(nil, nil, nil)
		if err := svc.RequestPasswordReset(ctx, "ghost@x.com"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("mail failure leaves token live", func(t *testing.T) {
		users := newFakeUserRepo()
		resets := newFakePasswordResetRepo()
		mailer := &fakeResetMailer{err: errors.New("smtp down")}
		svc := newAuthServiceForTests(users, resets, mailer)

		if _, err := svc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
			t.Fatalf("register: %v", err)
		}
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); !errors.Is(err, ErrEmailDelivery) {
			t.Fatalf("expected ErrEmailDelivery, got %v", err)
		}
		if resets.live() != 1 {
			t.Fatal("token must stay live after mail failure; the next request supersedes it")
		}
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeUserRepo, *fakePasswordResetRepo, *fakeResetMailer, uuid.UUID) {
		t.Helper()
		users := newFakeUserRepo()
		resets := newFakePasswordResetRepo()
		mailer := &fakeResetMailer{}
		svc := newAuthServiceForTests(users, resets, mailer)
		result, err := svc.Register(ctx, "A", "a@x.com", "secret1")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		return svc, users, resets, mailer, result.User.ID
	}

	t.Run("success applies new password and consumes token", func(t *testing.T) {
		svc, _, resets, mailer, _ := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("request: %v", err)
		}
		secret := mailer.lastSecret(t)

		if err := svc.ConfirmPasswordReset(ctx, secret, "newpass1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resets.live() != 0 {
			t.Fatal("consumed token must be deleted")
		}
		if _, err := svc.Login(ctx, "a@x.com", "newpass1"); err != nil {
			t.Fatalf("login with reset password failed: %v", err)
		}
		if _, err := svc.Login(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("old password must stop working, got %v", err)
		}
	})

	t.Run("token is usable exactly once", func(t *testing.T) {
		svc, _, _, mailer, _ := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("request: %v", err)
		}
		secret := mailer.lastSecret(t)

		if err := svc.ConfirmPasswordReset(ctx, secret, "newpass1"); err != nil {
			t.Fatalf("first consume failed: %v", err)
		}
		if err := svc.ConfirmPasswordReset(ctx, secret, "otherpass1"); !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected replay to fail with ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("second request invalidates first secret", func(t *testing.T) {
		svc, _, _, mailer, _ := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("first request: %v", err)
		}
		first := mailer.lastSecret(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("second request: %v", err)
		}
		second := mailer.lastSecret(t)
		if first == second {
			t.Fatal("expected a fresh secret per request")
		}

		if err := svc.ConfirmPasswordReset(ctx, first, "newpass1"); !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected superseded secret to fail, got %v", err)
		}
		if err := svc.ConfirmPasswordReset(ctx, second, "newpass1"); err != nil {
			t.Fatalf("latest secret must work: %v", err)
		}
	})

	t.Run("expired token fails even if unused", func(t *testing.T) {
		svc, _, resets, mailer, _ := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("request: %v", err)
		}
		secret := mailer.lastSecret(t)
		for _, reset := range resets.rows {
			reset.ExpiresAt = time.Now().Add(-time.Minute)
		}

		if err := svc.ConfirmPasswordReset(ctx, secret, "newpass1"); !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("short password rejected without consuming token", func(t *testing.T) {
		svc, _, resets, mailer, _ := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("request: %v", err)
		}
		secret := mailer.lastSecret(t)

		if err := svc.ConfirmPasswordReset(ctx, secret, "12345"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if resets.live() != 1 {
			t.Fatal("validation failure must not consume the token")
		}
	})

	t.Run("unknown secret", func(t *testing.T) {
		svc, _, _, _, _ := setup(t)
		if err := svc.ConfirmPasswordReset(ctx, "deadbeef", "newpass1"); !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("user deleted after token issued", func(t *testing.T) {
		svc, users, resets, mailer, userID := setup(t)
		if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
			t.Fatalf("request: %v", err)
		}
		secret := mailer.lastSecret(t)
		delete(users.byID, userID)

		if err := svc.ConfirmPasswordReset(ctx, secret, "newpass1"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if resets.live() != 0 {
			t.Fatal("token must be consumed even when the surrounding flow fails")
		}
	})
}

// End-to-end walk through the credential lifecycle: register, bad login,
// reset requested twice, superseded secret rejected, latest secret applied.
func TestCredentialLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	resets := newFakePasswordResetRepo()
	mailer := &fakeResetMailer{}
	svc := newAuthServiceForTests(users, resets, mailer)

	registered, err := svc.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("registration must return a session token")
	}

	if _, err := svc.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
		t.Fatalf("first reset request: %v", err)
	}
	s1 := mailer.lastSecret(t)

	if err := svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
		t.Fatalf("second reset request: %v", err)
	}
	s2 := mailer.lastSecret(t)

	if err := svc.ConfirmPasswordReset(ctx, s1, "newpass1"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("superseded secret must fail, got %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, s2, "newpass1"); err != nil {
		t.Fatalf("consume latest secret: %v", err)
	}

	if _, err := svc.Login(ctx, "a@x.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must fail, got %v", err)
	}
}
