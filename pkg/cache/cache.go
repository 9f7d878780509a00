package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations may be Redis
// or in-memory; callers must treat a miss as a normal outcome.
type Cache interface {
	// Get reads the value stored under key and unmarshals it into dest.
	// The boolean reports whether the key was present; on a miss dest is
	// left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
