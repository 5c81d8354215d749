// Package kv provides the local persistent key-value store used by the
// privacy and audit repositories. Keys are plain strings namespaced per
// conversation; values are opaque byte payloads.
package kv

import (
	"context"
)

// Store defines the persistence operations required by the repositories.
// Implementations must return errors.ErrNotFound for missing keys so callers
// can distinguish "first write" from a storage failure.
type Store interface {
	// Get retrieves the value stored under key. Returns ErrNotFound if the key
	// does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// ListKeys returns all keys that start with prefix, in lexical order.
	ListKeys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying storage resources.
	Close() error
}
