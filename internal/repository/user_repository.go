package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/storage"
)

// UserRepository is the user counterpart of ProjectRepository: seed accounts
// merged with the persisted non-seed subset, full rewrite on every mutation.
type UserRepository interface {
	Load(ctx context.Context) error
	List() []domain.User
	GetByID(id string) (*domain.User, bool)
	GetByEmail(email string) (*domain.User, bool)
	Insert(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	mu      sync.RWMutex
	store   storage.Store
	logger  *zap.Logger
	seeds   []domain.User
	seedIDs map[string]struct{}
	items   []domain.User
}

// NewUserRepository returns a store-backed implementation seeded with the
// given fixtures.
func NewUserRepository(store storage.Store, seeds []domain.User, logger *zap.Logger) UserRepository {
	seedIDs := make(map[string]struct{}, len(seeds))
	for _, u := range seeds {
		seedIDs[u.ID] = struct{}{}
	}
	return &userRepository{
		store:   store,
		logger:  logger,
		seeds:   seeds,
		seedIDs: seedIDs,
	}
}

func (r *userRepository) Load(ctx context.Context) error {
	raw, ok, err := r.store.Load(ctx, KeyUsers)
	if err != nil {
		return err
	}

	var persisted []domain.User
	if ok {
		if err := json.Unmarshal(raw, &persisted); err != nil {
			r.logger.Warn("discarding unreadable user snapshot", zap.Error(err))
			persisted = nil
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]domain.User, 0, len(r.seeds)+len(persisted))
	r.items = append(r.items, r.seeds...)
	for _, u := range persisted {
		if _, isSeed := r.seedIDs[u.ID]; isSeed {
			continue
		}
		r.items = append(r.items, u)
	}
	return nil
}

func (r *userRepository) List() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.items))
	copy(out, r.items)
	return out
}

func (r *userRepository) GetByID(id string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if r.items[i].ID == id {
			u := r.items[i]
			return &u, true
		}
	}
	return nil, false
}

// GetByEmail looks a user up by login key, case-insensitively.
func (r *userRepository) GetByEmail(email string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if strings.EqualFold(r.items[i].Email, email) {
			u := r.items[i]
			return &u, true
		}
	}
	return nil, false
}

func (r *userRepository) Insert(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]domain.User{user}, r.items...)
	return r.persistLocked(ctx)
}

func (r *userRepository) Update(ctx context.Context, user domain.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == user.ID {
			r.items[i] = user
			return true, r.persistLocked(ctx)
		}
	}
	return false, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, r.persistLocked(ctx)
		}
	}
	return false, nil
}

func (r *userRepository) persistLocked(ctx context.Context) error {
	nonSeed := make([]domain.User, 0, len(r.items))
	for _, u := range r.items {
		if _, isSeed := r.seedIDs[u.ID]; isSeed {
			continue
		}
		nonSeed = append(nonSeed, u)
	}
	return r.store.Save(ctx, KeyUsers, nonSeed)
}
