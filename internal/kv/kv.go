// Package kv provides the keyed string storage that task records are persisted to.
package kv

import "context"

// Store is a flat key/value substrate. Each Set replaces the whole value
// for a key atomically; there is no multi-key transaction.
type Store interface {
	// Get returns the value for key. found is false when the key has never
	// been written or was deleted.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
