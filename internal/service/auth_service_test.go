package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/repository"
	"github.com/projectflow/projectflow-service/internal/seed"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// ---------------------------------------------------------------------------
// In-memory stub store shared by the service tests
// ---------------------------------------------------------------------------

type memStore struct {
	data map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]json.RawMessage)}
}

func (s *memStore) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	raw, ok := s.data[key]
	return raw, ok, nil
}

func (s *memStore) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTLHours:     24,
		BcryptCost:        4, // keep hashing cheap in tests
		DemoUserPassword:  "password123",
		DemoAdminPassword: "admin123",
	}
}

type authFixture struct {
	auth     *AuthService
	users    repository.UserRepository
	sessions repository.SessionRepository
	clock    *clock.Fake
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := testAuthConfig()
	store := newMemStore()
	ctx := context.Background()

	seedUsers, err := seed.Users(cfg)
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}

	users := repository.NewUserRepository(store, seedUsers, zap.NewNop())
	if err := users.Load(ctx); err != nil {
		t.Fatalf("load users: %v", err)
	}
	sessions := repository.NewSessionRepository(store, zap.NewNop())
	fake := clock.NewFake(time.Now().UTC())
	if err := sessions.Load(ctx, fake.Now()); err != nil {
		t.Fatalf("load sessions: %v", err)
	}

	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:    users,
		SessionRepo: sessions,
		Clock:       fake,
		Latency:     1500 * time.Millisecond, // fake clock keeps this instant
	})
	return &authFixture{auth: svc, users: users, sessions: sessions, clock: fake}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestAuthService_LoginDemoAccounts(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	user, token, expiresAt, err := fx.auth.Login(ctx, seed.DemoUserEmail, "password123")
	if err != nil {
		t.Fatalf("user login: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected user role, got %q", user.Role)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if want := fx.clock.Now().Add(24 * time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expected 24h expiry, got %v", expiresAt)
	}

	admin, _, _, err := fx.auth.Login(ctx, seed.DemoAdminEmail, "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", seed.DemoUserEmail, "nope"},
		{"unknown email", "ghost@projectflow.com", "password123"},
		{"fixture without credentials", "jane.smith@projectflow.com", "password123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := fx.auth.Login(ctx, tc.email, tc.password)
			if err == nil {
				t.Fatal("expected login to fail")
			}
			if code := errCode(t, err); code != "INVALID_CREDENTIALS" {
				t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
			}
		})
	}
}

func TestAuthService_CurrentUserAfterLogin(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	loggedIn, token, _, err := fx.auth.Login(ctx, seed.DemoUserEmail, "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	current, err := fx.auth.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if current.ID != loggedIn.ID || current.Email != loggedIn.Email {
		t.Fatalf("expected the logged-in user back, got %+v", current)
	}
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.auth.Login(ctx, seed.DemoUserEmail, "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := fx.auth.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = fx.auth.CurrentUser(ctx, token)
	if err == nil {
		t.Fatal("expected current user to fail after logout")
	}
	if code := errCode(t, err); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", code)
	}

	// Logging out again is a no-op.
	if err := fx.auth.Logout(ctx, token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestAuthService_ExpiredSessionRejected(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.auth.Login(ctx, seed.DemoUserEmail, "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fx.clock.Advance(25 * time.Hour)

	_, err = fx.auth.CurrentUser(ctx, token)
	if err == nil {
		t.Fatal("expected expired session to be rejected")
	}
	if code := errCode(t, err); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", code)
	}
}

func TestAuthService_GarbageTokenRejected(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.CurrentUser(context.Background(), "not-a-token")
	if err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
	if code := errCode(t, err); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", code)
	}
}
