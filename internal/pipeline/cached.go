package pipeline

import (
	"sync/atomic"

	"github.com/ppiankov/mirror/internal/cache"
	"github.com/ppiankov/mirror/internal/model"
)

// CachedAnalyzer memoizes analyses by entry text.
// Analysis is deterministic, so a cached result is always the same result.
type CachedAnalyzer struct {
	next   EntryAnalyzer
	cache  cache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedAnalyzer wraps next with the given cache
func NewCachedAnalyzer(next EntryAnalyzer, c cache.Cache) *CachedAnalyzer {
	return &CachedAnalyzer{next: next, cache: c}
}

// Analyze returns a cached analysis when present, otherwise delegates and stores the result.
// Errors are never cached.
func (c *CachedAnalyzer) Analyze(text string) (model.EntryAnalysis, error) {
	key := cache.Key(text)
	if analysis, found := c.cache.Get(key); found {
		c.hits.Add(1)
		return analysis, nil
	}

	c.misses.Add(1)
	analysis, err := c.next.Analyze(text)
	if err != nil {
		return model.EntryAnalysis{}, err
	}

	// Best effort
	_ = c.cache.Set(key, analysis, 0)

	return analysis, nil
}

// Stats returns cache hits and misses since creation
func (c *CachedAnalyzer) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
