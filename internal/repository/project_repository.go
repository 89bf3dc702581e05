package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/storage"
)

// ProjectRepository holds the ordered project collection: seed fixtures
// merged with the persisted non-seed subset. Every mutation writes the full
// non-seed subset back through the store.
type ProjectRepository interface {
	Load(ctx context.Context) error
	List() []domain.Project
	GetByID(id string) (*domain.Project, bool)
	Insert(ctx context.Context, project domain.Project) error
	Update(ctx context.Context, project domain.Project) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type projectRepository struct {
	mu      sync.RWMutex
	store   storage.Store
	logger  *zap.Logger
	seeds   []domain.Project
	seedIDs map[string]struct{}
	items   []domain.Project
}

// NewProjectRepository returns a store-backed implementation seeded with the
// given fixtures.
func NewProjectRepository(store storage.Store, seeds []domain.Project, logger *zap.Logger) ProjectRepository {
	seedIDs := make(map[string]struct{}, len(seeds))
	for _, p := range seeds {
		seedIDs[p.ID] = struct{}{}
	}
	return &projectRepository{
		store:   store,
		logger:  logger,
		seeds:   seeds,
		seedIDs: seedIDs,
	}
}

// Load merges the seed set with whatever the store holds. Seeds always come
// first; user-created entities keep their stored order after them.
func (r *projectRepository) Load(ctx context.Context) error {
	raw, ok, err := r.store.Load(ctx, KeyProjects)
	if err != nil {
		return err
	}

	var persisted []domain.Project
	if ok {
		if err := json.Unmarshal(raw, &persisted); err != nil {
			r.logger.Warn("discarding unreadable project snapshot", zap.Error(err))
			persisted = nil
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]domain.Project, 0, len(r.seeds)+len(persisted))
	r.items = append(r.items, r.seeds...)
	for _, p := range persisted {
		if _, isSeed := r.seedIDs[p.ID]; isSeed {
			continue
		}
		r.items = append(r.items, p)
	}
	return nil
}

// List returns the collection in insertion order.
func (r *projectRepository) List() []domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Project, len(r.items))
	copy(out, r.items)
	return out
}

// GetByID returns a copy of the project when present.
func (r *projectRepository) GetByID(id string) (*domain.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if r.items[i].ID == id {
			p := r.items[i]
			return &p, true
		}
	}
	return nil, false
}

// Insert prepends the project and persists the non-seed subset.
func (r *projectRepository) Insert(ctx context.Context, project domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]domain.Project{project}, r.items...)
	return r.persistLocked(ctx)
}

// Update replaces the stored project by id. Returns false when absent.
func (r *projectRepository) Update(ctx context.Context, project domain.Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == project.ID {
			r.items[i] = project
			return true, r.persistLocked(ctx)
		}
	}
	return false, nil
}

// Delete removes the project by id. Removing an absent id is a no-op.
func (r *projectRepository) Delete(ctx context.Context, id string) (bool, error) {
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

func (r *projectRepository) persistLocked(ctx context.Context) error {
	nonSeed := make([]domain.Project, 0, len(r.items))
	for _, p := range r.items {
		if _, isSeed := r.seedIDs[p.ID]; isSeed {
			continue
		}
		nonSeed = append(nonSeed, p)
	}
	return r.store.Save(ctx, KeyProjects, nonSeed)
}
