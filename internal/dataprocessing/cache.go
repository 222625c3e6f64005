package dataprocessing

import (
	"sync"
)

// cacheEntry is one memoized reducer result.
type cacheEntry struct {
	value    any
	lastUsed uint64
	hitCount int
}

// CacheStats is a point-in-time view of cache usage.
type CacheStats struct {
	Entries   int     `json:"entries"`
	MaxSize   int     `json:"max_size"`
	HitCount  int64   `json:"hit_count"`
	MissCount int64   `json:"miss_count"`
	HitRatio  float64 `json:"hit_ratio"`
}

// ResultCache is a bounded least-recently-used store of reducer results.
// Recency is tracked with a monotonic counter rather than wall time.
type ResultCache struct {
	entries   map[string]*cacheEntry
	mutex     sync.Mutex
	maxSize   int
	tick      uint64
	hitCount  int64
	missCount int64
}

// NewResultCache creates a cache holding at most maxSize results. A maxSize
// of zero or less disables caching.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves a cached result.
func (c *ResultCache) Get(key string) (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.missCount++
		return nil, false
	}

	c.tick++
	entry.lastUsed = c.tick
	entry.hitCount++
	c.hitCount++
	return entry.value, true
}

// Set stores a result, evicting the least recently used entry when full.
func (c *ResultCache) Set(key string, value any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.maxSize <= 0 {
		return
	}

	c.tick++
	if entry, exists := c.entries[key]; exists {
		entry.value = value
		entry.lastUsed = c.tick
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictLeastRecent()
	}
	c.entries[key] = &cacheEntry{value: value, lastUsed: c.tick}
}

// Purge drops every entry. Counters are kept.
func (c *ResultCache) Purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *ResultCache) Stats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	total := c.hitCount + c.missCount
	ratio := float64(0)
	if total > 0 {
		ratio = float64(c.hitCount) / float64(total)
	}
	return CacheStats{
		Entries:   len(c.entries),
		MaxSize:   c.maxSize,
		HitCount:  c.hitCount,
		MissCount: c.missCount,
		HitRatio:  ratio,
	}
}

func (c *ResultCache) evictLeastRecent() {
	var oldestKey string
	var oldest uint64
	found := false

	for key, entry := range c.entries {
		if !found || entry.lastUsed < oldest {
			oldestKey = key
			oldest = entry.lastUsed
			found = true
		}
	}

	if found {
		delete(c.entries, oldestKey)
	}
}
