// Package cache provides pluggable byte caches for evaluated query results
// and serialized graphs.
//
// Three backends ship with the project: FileCache for CLI usage, RedisCache
// for the server, and NullCache to disable caching. Keys are produced by a
// Keyer so every component hashes the same inputs the same way.
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract shared by all backends. Values are opaque
// bytes; callers serialize before Set and deserialize after Get.
type Cache interface {
	// Get retrieves a value. The second return value distinguishes a miss
	// from an empty value.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
