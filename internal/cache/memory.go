package cache

import (
	"errors"

	gocache "github.com/patrickmn/go-cache"
)

// ErrFull is returned by Set when the cache holds its maximum number of entries
var ErrFull = errors.New("cache full")

// MemoryCache implements an in-memory cache without expiry, capped by entry count
type MemoryCache struct {
	cache      *gocache.Cache
	maxEntries int
}

// NewMemoryCache creates a new memory cache. maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		// No expiration and no janitor: entries live until Clear
		cache:      gocache.New(gocache.NoExpiration, 0),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (string, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a value in the cache
func (c *MemoryCache) Set(key string, value string) error {
	if c.maxEntries > 0 && c.cache.ItemCount() >= c.maxEntries {
		if _, found := c.cache.Get(key); !found {
			return ErrFull
		}
	}
	c.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
