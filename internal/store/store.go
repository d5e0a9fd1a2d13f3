// Package store persists evaluation sessions and chat transcripts as
// versioned JSON documents over a pluggable key-value backend.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key has no value.
	ErrNotFound = errors.New("not found")
	// ErrSchemaVersion is returned when a stored document was written with
	// a different schema version than this build reads.
	ErrSchemaVersion = errors.New("unsupported document schema version")
)

// KV is an opaque-key byte store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
