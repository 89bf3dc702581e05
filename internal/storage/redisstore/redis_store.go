// Package redisstore implements the snapshot store on Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/storage"
)

// Store persists each key as a plain Redis string value.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

var _ storage.Store = (*Store)(nil)

// NewStore connects to Redis using the provided configuration. Connectivity
// problems are reported at first use, not at construction.
func NewStore(cfg config.RedisConfig, logger *zap.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Store{client: client, logger: logger}
}

// Load reads and unwraps the stored value.
func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	data, err := storage.DecodeEnvelope(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable stored value",
			zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

// Save writes the enveloped value without expiry.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	raw, err := storage.EncodeEnvelope(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key; removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}
