package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/domain"
	"github.com/projectflow/projectflow-service/internal/storage"
)

// SessionRepository tracks issued sessions so logout can revoke a token
// before its natural expiry. The whole set is mirrored into the store on
// every change.
type SessionRepository interface {
	Load(ctx context.Context, now time.Time) error
	Create(ctx context.Context, session domain.Session) error
	Get(id string) (*domain.Session, bool)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	mu       sync.RWMutex
	store    storage.Store
	logger   *zap.Logger
	sessions map[string]domain.Session
}

// NewSessionRepository returns a store-backed implementation.
func NewSessionRepository(store storage.Store, logger *zap.Logger) SessionRepository {
	return &sessionRepository{
		store:    store,
		logger:   logger,
		sessions: make(map[string]domain.Session),
	}
}

// Load restores the session set, dropping anything already expired.
func (r *sessionRepository) Load(ctx context.Context, now time.Time) error {
	raw, ok, err := r.store.Load(ctx, KeySessions)
	if err != nil {
		return err
	}

	restored := make(map[string]domain.Session)
	if ok {
		if err := json.Unmarshal(raw, &restored); err != nil {
			r.logger.Warn("discarding unreadable session snapshot", zap.Error(err))
			restored = make(map[string]domain.Session)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]domain.Session, len(restored))
	for id, s := range restored {
		if s.Expired(now) {
			continue
		}
		r.sessions[id] = s
	}
	return nil
}

func (r *sessionRepository) Create(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return r.persistLocked(ctx)
}

func (r *sessionRepository) Get(id string) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return &s, true
}

// Delete removes the session; deleting an unknown id is a no-op.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return nil
	}
	delete(r.sessions, id)
	return r.persistLocked(ctx)
}

func (r *sessionRepository) persistLocked(ctx context.Context) error {
	return r.store.Save(ctx, KeySessions, r.sessions)
}
