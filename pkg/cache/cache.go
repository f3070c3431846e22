// Package cache provides byte-level caching of registry responses.
//
// Only raw registry collections are cached. Trees, graphs, parsed schemas and
// layouts are always recomputed from their inputs.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled, tests)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//
// # Keys
//
// Keys are produced by a [Keyer] so every backend sees the same key scheme:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "https://registry.example.com|")
//	key := keyer.RegistryKey("http", "metrics", 500)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss;
	// expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// RegistryKey identifies one fetched registry collection.
	RegistryKey(source, collection string, limit int) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RegistryKey returns "registry:<hash>" over the source, collection and limit.
func (DefaultKeyer) RegistryKey(source, collection string, limit int) string {
	return hashKey("registry", source, collection, limit)
}

var _ Keyer = DefaultKeyer{}
