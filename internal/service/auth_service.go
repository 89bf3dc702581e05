package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/events"
	"github.com/projectflow/projectflow-service/internal/repository"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// AuthService is the session holder: it authenticates credentials, issues
// session-bound tokens and resolves tokens back to users.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	clock      clock.Clock
	latency    time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
	Clock       clock.Clock
	Latency     time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
		latency:    deps.Latency,
	}
}

// Login authenticates by email and password. Accounts without stored
// credentials (fixture users other than the demo pair) can never log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, "", time.Time{}, err
	}

	user, ok := s.users.GetByEmail(email)
	if !ok || user.PasswordHash == "" {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	now := s.clock.Now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenMgr.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user, session.ID, now)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, user.ID, nil)
	return user, token, expiresAt, nil
}

// CurrentUser resolves a token to its user. A missing, invalid or expired
// token, or a revoked session, yields UNAUTHENTICATED and clears any
// lingering session record.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid or expired token")
	}

	session, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, apperrors.NewUnauthenticated("session not found")
	}
	if session.Expired(s.clock.Now()) {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, apperrors.NewUnauthenticated("session expired")
	}

	user, ok := s.users.GetByID(claims.UserID)
	if !ok {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, apperrors.NewUnauthenticated("user no longer exists")
	}
	return user, nil
}

// Logout revokes the token's session. Unparseable tokens are ignored so
// logout stays idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return err
	}
	s.publish(ctx, events.EventUserLoggedOut, claims.UserID, claims.UserID, nil)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID, entityID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		EntityID:  entityID,
		Timestamp: s.clock.Now(),
		Payload:   payload,
	})
}
