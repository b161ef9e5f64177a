// Package cache provides pluggable byte caches for rendered artifacts.
//
// The pipeline caches generated SVG and JSON documents keyed by their full
// parameter set, so re-rendering the same maze is a lookup instead of a
// recompute. Backends:
//   - file: directory-based cache for CLI usage
//   - null: disabled caching
//   - redis: shared cache for multi-instance server deployments
//   - mongo: document-store cache when Mongo is already in the stack
//
// [Scoped] wraps any backend with a key prefix for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends. Get reports a
// miss with (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
