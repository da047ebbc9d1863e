// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Rendering is deterministic, so the pipeline can key results by content:
// a layout by the hash of the diagram source, an artifact by the hash of
// its layout plus the output options. Every backend implements [Cache], a
// byte-oriented store with per-entry TTL.
//
// # Backends
//
//   - [NullCache] stores nothing (the --no-cache path)
//   - [FileCache] writes msgpack entries under a sharded directory, for the CLI
//   - [RedisCache] uses go-redis, for servers sharing one cache
//   - [MongoCache] uses a MongoDB collection with a TTL index
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// A [Keyer] builds the keys. [DefaultKeyer] hashes the options into the
// key so any option change misses; [ScopedKeyer] adds a prefix for
// isolating tenants or versions in a shared backend.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Entries are pure functions of their key, so
// expiry only bounds storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases connections held by the backend.
	Close() error
}
