package cache

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process. The HTTP server uses it to answer
// repeated renders of the same script without replaying it.
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. Entries set with a zero ttl
// expire after defaultTTL; a non-positive defaultTTL keeps them forever.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	cleanup := 10 * time.Minute
	if defaultTTL > 0 && defaultTTL < cleanup {
		cleanup = defaultTTL
	}
	return &MemoryCache{c: gocache.New(defaultTTL, cleanup)}
}

// Get returns a copy of the stored entry.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v.([]byte)), true, nil
}

// Set stores a copy of data.
func (m *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, slices.Clone(data), ttl)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet
// cleaned up.
func (m *MemoryCache) Len() int { return m.c.ItemCount() }

// Close drops every entry.
func (m *MemoryCache) Close() error {
	m.c.Flush()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
