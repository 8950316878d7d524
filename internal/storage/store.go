// Package storage provides the durable key-value persistence that backs the
// client session. It plays the role browser local storage plays for a web client:
// small string-keyed values, written on every mutation, read once at startup.
package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/staffdesk/staffdesk/internal/config"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = stderrors.New("storage: key not found")

// Store is a small durable key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
