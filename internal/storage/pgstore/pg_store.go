// Package pgstore implements the snapshot store on Postgres, one row per
// key in a single kv table.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/storage"
)

const bootstrapDDL = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store persists each key as a row in kv_entries.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ storage.Store = (*Store)(nil)

// NewStore establishes a connection pool and ensures the kv table exists.
func NewStore(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN required for the postgres storage backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, bootstrapDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap kv table: %w", err)
	}

	logger.Info("connected to postgres")
	return &Store{pool: pool, logger: logger}, nil
}

// Load reads and unwraps the stored value.
func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE key=$1`

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}

	data, err := storage.DecodeEnvelope(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable stored value",
			zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

// Save upserts the enveloped value.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	raw, err := storage.EncodeEnvelope(value)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

	if _, err := s.pool.Exec(ctx, query, key, raw); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key; removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key=$1`
	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}
