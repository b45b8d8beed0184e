// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Cache.Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// Cache defines the key-value contract shared by the feed response cache and
// the persisted settings store.
// Implementations can be Redis, SQLite, in-memory, or any other solution.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a value without expiry
//	err := cache.Set(ctx, "settings:selected_source", data, 0)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "settings:selected_source")
//	if errors.Is(err, interfaces.ErrKeyNotFound) {
//		// nothing stored yet
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrKeyNotFound if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
