// Package cache stores rendered artifacts keyed by script, template and
// format.
//
// Four backends implement [Cache]: [NullCache] disables caching,
// [FileCache] persists entries for the CLI, [MemoryCache] keeps them in
// process for the HTTP server and [RedisCache] shares them between server
// instances. [Open] picks one from a [Config].
//
// Keys come from a [Keyer], so callers never build key strings by hand:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(script), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string
	Dir       string // file backend directory
	RedisAddr string
	TTL       time.Duration // memory backend default expiry
}

// Open returns the configured backend. An empty backend is [BackendNone].
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMemory:
		return NewMemoryCache(cfg.TTL), nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
