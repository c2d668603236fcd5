package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("key not found")

// Store defines the persisted key-value operations the application relies on.
// This is a port that can be implemented by different providers (Redis, an
// on-device store, an in-memory fake for tests).
type Store interface {
	// Get retrieves a value from the store by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the given key with the specified TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the store by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}

// UserKey builds a user-scoped key of the form "<prefix>_<userID>".
// All per-user blobs (addresses, cart, search history, tokens) are namespaced
// this way.
func UserKey(prefix, userID string) string {
	return fmt.Sprintf("%s_%s", prefix, userID)
}
