// Package storage defines the key-value snapshot store the repositories
// persist through. Values are flat JSON blobs wrapped in a versioned
// envelope; there is exactly one writer per key so no transactional
// guarantees are offered.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// SchemaVersion is stamped on every persisted value.
const SchemaVersion = 1

// Store is the persistence adapter contract: load returns the stored value
// when present, save overwrites, remove deletes. A corrupt stored value is
// reported as absent, not as an error.
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report connectivity for
// readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// EncodeEnvelope wraps a value in the versioned envelope.
func EncodeEnvelope(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
}

// DecodeEnvelope unwraps a stored envelope. Unknown future schema versions
// are rejected so callers fall back to defaults instead of misreading data.
func DecodeEnvelope(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", env.SchemaVersion)
	}
	return env.Data, nil
}
