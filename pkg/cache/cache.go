// Package cache stores computed results keyed by the content that produced
// them.
//
// Engine results are pure functions of a design and a policy, so a cache
// entry never goes stale; TTLs only bound storage. Backends:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: in-process LRU, for the API server
//   - [RedisCache]: shared cache across server instances
//   - [MongoCache]: shared cache with a TTL index
//
// [Open] picks a backend from a [Config].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLBeams    = 7 * 24 * time.Hour
	TTLSnapshot = 7 * 24 * time.Hour
	TTLExport   = 24 * time.Hour
)
