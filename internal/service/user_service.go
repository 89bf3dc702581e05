package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/events"
	"github.com/projectflow/projectflow-service/internal/repository"
	apperrors "github.com/projectflow/projectflow-service/pkg/util"
)

// UserService coordinates the user administration flows.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	clock      clock.Clock
	latency    time.Duration
	bcryptCost int
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Clock      clock.Clock
	Latency    time.Duration
	BcryptCost int
}

// UserCreateInput describes user creation payload. Password is optional;
// accounts created without one cannot log in.
type UserCreateInput struct {
	Email    string
	Name     string
	Role     domain.Role
	Avatar   string
	Password string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
		latency:    deps.Latency,
		bcryptCost: deps.BcryptCost,
	}
}

// Create inserts a new user. Emails are the login key and must be unique.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if _, exists := s.users.GetByEmail(email); exists {
		return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	var hash string
	if input.Password != "" {
		var err error
		hash, err = auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           repository.NewEntityID("user", now),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Avatar:       input.Avatar,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserCreated, user)
	return &user, nil
}

// Update applies a partial patch to an existing user.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	user, ok := s.users.GetByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if other, exists := s.users.GetByEmail(email); exists && other.ID != id {
			return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
		}
		user.Email = email
	}
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	user.UpdatedAt = s.clock.Now()

	found, err := s.users.Update(ctx, *user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

// Delete removes a user account. Deleting the authenticated principal's own
// account is forbidden; deleting an unknown id is a silent no-op.
func (s *UserService) Delete(ctx context.Context, principal *domain.User, id string) error {
	if principal == nil {
		return apperrors.NewUnauthenticated("login required to delete users")
	}
	if principal.ID == id {
		return apperrors.NewSelfDeleteForbidden()
	}
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return err
	}

	user, ok := s.users.GetByID(id)
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed && ok {
		s.publish(ctx, events.EventUserDeleted, *user)
	}
	return nil
}

// List returns every user in insertion order.
func (s *UserService) List() []domain.User {
	return s.users.List()
}

// Get returns a single user by id.
func (s *UserService) Get(id string) (*domain.User, error) {
	user, ok := s.users.GetByID(id)
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, user domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  user.ID,
		Timestamp: s.clock.Now(),
		Payload: events.UserChangedPayload{
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}
