package cache

import (
	"context"
	"time"
)

// Scoped wraps a cache with a key prefix, so several deployments or
// tenants can share one backend without key collisions. The Redis backend
// uses it to implement its Prefix option.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner, prepending prefix to every key.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves an entry under the scoped key.
func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores an entry under the scoped key.
func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes an entry under the scoped key.
func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the wrapped cache.
func (c *Scoped) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Scoped)(nil)
