package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size-bounded cache with a fixed per-entry TTL, used for caching
// ranked routes between quote requests. Safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, any]
}

// New creates a new cache holding at most size entries, each expiring after ttl.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// Set adds a value to the cache, replacing any existing entry for the key.
func (c *Cache) Set(key string, value any) {
	c.lru.Add(key, value)
}

// Get retrieves a value from the cache. The second return value reports
// whether a non-expired entry was found.
func (c *Cache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Len returns the number of non-expired entries in the cache.
func (c *Cache) Len() int {
	return c.lru.Len()
}
