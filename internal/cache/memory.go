package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/mirror/internal/model"
)

// MemoryCache implements in-memory expiring caching
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves an analysis from the cache
func (c *MemoryCache) Get(key string) (model.EntryAnalysis, bool) {
	if val, found := c.cache.Get(key); found {
		if analysis, ok := val.(model.EntryAnalysis); ok {
			return cloneAnalysis(analysis), true
		}
	}
	return model.EntryAnalysis{}, false
}

// Set stores an analysis with the given TTL (0 uses the default)
func (c *MemoryCache) Set(key string, value model.EntryAnalysis, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, cloneAnalysis(value), ttl)
	return nil
}

// Delete removes an analysis from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached items, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// cloneAnalysis copies the bias slice so callers cannot mutate cached values
func cloneAnalysis(a model.EntryAnalysis) model.EntryAnalysis {
	biases := make([]model.DetectedBias, len(a.Biases))
	copy(biases, a.Biases)
	a.Biases = biases
	return a
}
