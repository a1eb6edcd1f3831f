package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer. The Redis implementation is
// the only one in production; tests use in-memory stand-ins.
type Cache interface {
	// Get loads the value for key into dest.
	// found = false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
