package cache

import (
	"context"
	"time"
)

// ScopedCache wraps a Cache with a key prefix so that several clients can
// share one backend without key collisions.
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of inner whose keys are prefixed with prefix.
// A nil inner yields a scoped [NullCache].
func Scoped(inner Cache, prefix string) *ScopedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

// Get retrieves prefix+key from the wrapped cache.
func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores data under prefix+key.
func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes prefix+key.
func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the wrapped cache.
func (c *ScopedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)
