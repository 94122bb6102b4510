package cache

import (
	"context"
	"time"
)

// Store is a persistent byte cache keyed by string.
type Store interface {
	// Get returns the cached value for key. The second return value is
	// false if the key is not present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Prune removes entries stored before cutoff and returns how many
	// were removed.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	// Len returns the number of cached entries.
	Len(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}
