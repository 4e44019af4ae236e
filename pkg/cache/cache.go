// Package cache stores rendered artifacts keyed by document content and
// render options.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// # Keys
//
// A [Keyer] turns a document hash and options into a key. Keys are
// deterministic, so the same document rendered with the same options hits
// the same entry from any process sharing the backend:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(source), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept. Rendering is
// deterministic, so entries only go stale when the renderer changes.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// failed. A ttl of zero stores without expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
