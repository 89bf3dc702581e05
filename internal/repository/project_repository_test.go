package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub store
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

func seedProjects() []domain.Project {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Project{
		{ID: "1", Title: "Seed One", OwnerID: "1", Status: domain.ProjectStatusPlanning, CreatedAt: now, UpdatedAt: now},
		{ID: "2", Title: "Seed Two", OwnerID: "3", Status: domain.ProjectStatusCompleted, CreatedAt: now, UpdatedAt: now},
	}
}

func TestProjectRepository_LoadWithoutSnapshotYieldsSeeds(t *testing.T) {
	repo := NewProjectRepository(newMemStore(), seedProjects(), zap.NewNop())
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	items := repo.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 seed projects, got %d", len(items))
	}
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("expected seed order preserved, got %q, %q", items[0].ID, items[1].ID)
	}
}

func TestProjectRepository_PersistsOnlyNonSeedSubset(t *testing.T) {
	store := newMemStore()
	repo := NewProjectRepository(store, seedProjects(), zap.NewNop())
	ctx := context.Background()
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	created := domain.Project{ID: "project_1700000000000_abc123def", Title: "Mine", OwnerID: "1"}
	if err := repo.Insert(ctx, created); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var persisted []domain.Project
	if err := json.Unmarshal(store.data[KeyProjects], &persisted); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != created.ID {
		t.Fatalf("expected snapshot to hold only the created project, got %+v", persisted)
	}
}

func TestProjectRepository_RestartRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	first := NewProjectRepository(store, seedProjects(), zap.NewNop())
	if err := first.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	created := domain.Project{ID: "project_1700000000000_abc123def", Title: "Mine", OwnerID: "1"}
	if err := first.Insert(ctx, created); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Simulated process restart: a fresh repository over the same store.
	second := NewProjectRepository(store, seedProjects(), zap.NewNop())
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	items := second.List()
	if len(items) != 3 {
		t.Fatalf("expected seeds plus created project, got %d items", len(items))
	}
	// Seeds come first on load; user-created entities follow.
	if items[0].ID != "1" || items[1].ID != "2" || items[2].ID != created.ID {
		t.Fatalf("unexpected order after reload: %q, %q, %q", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestProjectRepository_SnapshotEntryCollidingWithSeedIsDropped(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	stale := []domain.Project{{ID: "1", Title: "Impostor"}}
	if err := store.Save(ctx, KeyProjects, stale); err != nil {
		t.Fatalf("prime store: %v", err)
	}

	repo := NewProjectRepository(store, seedProjects(), zap.NewNop())
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	items := repo.List()
	if len(items) != 2 {
		t.Fatalf("expected colliding snapshot entry to be dropped, got %d items", len(items))
	}
	if items[0].Title != "Seed One" {
		t.Fatalf("seed must win over persisted impostor, got %q", items[0].Title)
	}
}

func TestProjectRepository_DeleteMissingIsNoOp(t *testing.T) {
	store := newMemStore()
	repo := NewProjectRepository(store, seedProjects(), zap.NewNop())
	ctx := context.Background()
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	removed, err := repo.Delete(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("expected delete of unknown id to report not removed")
	}
	if len(repo.List()) != 2 {
		t.Fatal("collection must be unchanged")
	}
}

func TestNewEntityID_NamespacedAndUnique(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewEntityID("project", now)
	b := NewEntityID("project", now)

	if a == b {
		t.Fatal("two generated ids must differ")
	}
	prefix := "project_" + "1709294400000" + "_"
	if len(a) != len(prefix)+9 || a[:len(prefix)] != prefix {
		t.Fatalf("unexpected id shape: %q", a)
	}
}
