// Package resultcache is a small typed TTL cache for upstream results
// that are slow or rate limited to fetch.
package resultcache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are swept from memory.
// Reads never return expired entries, independent of the sweep.
const DefaultCleanupInterval = 10 * time.Minute

// Cache maps string keys to values of type V, each with its own TTL.
// It's safe for concurrent use.
type Cache[V any] struct {
	c *cache.Cache
}

// New creates an empty cache. A cleanupInterval <= 0 disables the background sweep,
// leaving only expiration on read.
func New[V any](cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		c: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Get returns the value for key if it was set and its TTL hasn't elapsed yet.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	item, found := c.c.Get(key)
	if !found {
		return zero, false
	}
	v, ok := item.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key, replacing any previous value and TTL.
// The TTL is measured from now. A ttl <= 0 means the value never expires.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	c.c.Set(key, value, ttl)
}

// Delete removes key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.c.Delete(key)
}

// Len returns the number of stored entries, which can include expired ones that weren't swept yet.
func (c *Cache[V]) Len() int {
	return c.c.ItemCount()
}
