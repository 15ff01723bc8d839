// Package storage provides durable local key/value persistence for serialized snapshots.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Keys persisted by the job tracker.
const (
	KeyTrackedJobs = "trackedJobs"
	KeyUser        = "user"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// KV is a durable key/value store. Values are opaque serialized snapshots;
// Put replaces the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open opens the named backend rooted at dataDir.
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(SQLitePath(dataDir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
