// Package cache provides byte-oriented response caches for registry lookups.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a cache directory (CLI default)
//   - [RedisCache]: shared cache in Redis, useful when several machines query
//     the same registry mirror
//   - [NullCache]: caching disabled
//
// Use [Scoped] to give each registry its own key space:
//
//	c, _ := cache.NewFileCache(dir)
//	crates := cache.Scoped(c, "crates:")
//	crates.Set(ctx, "serde", data, time.Hour) // stored under "crates:serde"
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownBackend is returned by [Open] for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache stores opaque byte payloads keyed by string.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of 0 passed to Set means the entry never expires.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string // "file" (default), "redis" or "none"
	Dir      string // FileCache directory
	RedisURL string // RedisCache connection URL, e.g. redis://localhost:6379/0
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
