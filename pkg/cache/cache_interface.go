package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer so Redis can be swapped for another store
type Cache interface {
	// Get unmarshals the cached JSON into dest.
	// found=false on a miss, dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL; strings and []byte are stored as-is, anything else as JSON
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "author:*")
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
