// Package file implements the snapshot store on the local filesystem, one
// JSON file per key. This is the default backend and needs no external
// services.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/storage"
)

// Store persists each key as <dir>/<key>.json.
type Store struct {
	dir    string
	logger *zap.Logger
}

var _ storage.Store = (*Store)(nil)

// NewStore creates the data directory if needed.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Load reads and unwraps the stored value. A missing file means no prior
// data; a corrupt file is logged and treated the same way.
func (s *Store) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	data, err := storage.DecodeEnvelope(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable stored value",
			zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return data, true, nil
}

// Save writes the enveloped value via a temp file and rename, so readers
// never observe a partial write.
func (s *Store) Save(_ context.Context, key string, value any) error {
	raw, err := storage.EncodeEnvelope(value)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key; removing an absent key is a no-op.
func (s *Store) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Ping verifies the data directory is still accessible.
func (s *Store) Ping(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *Store) path(key string) string {
	// Keys are internal constants, but keep path separators out anyway.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}
