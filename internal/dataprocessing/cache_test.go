package dataprocessing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultCache_BasicOperations(t *testing.T) {
	cache := NewResultCache(10)

	_, found := cache.Get("missing")
	assert.False(t, found)

	cache.Set("k", 42)
	v, found := cache.Get("k")
	assert.True(t, found)
	assert.Equal(t, 42, v)

	cache.Set("k", 43)
	v, _ = cache.Get("k")
	assert.Equal(t, 43, v)
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Zero(t, cache.Len())
}

func TestResultCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewResultCache(2)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Get("a")
	cache.Set("c", 3)

	_, foundA := cache.Get("a")
	_, foundB := cache.Get("b")
	_, foundC := cache.Get("c")
	assert.True(t, foundA, "recently read entry survives")
	assert.False(t, foundB, "least recently used entry is evicted")
	assert.True(t, foundC)
}

func TestResultCache_ZeroSize(t *testing.T) {
	cache := NewResultCache(0)
	cache.Set("a", 1)

	_, found := cache.Get("a")
	assert.False(t, found)
	assert.Zero(t, cache.Len())
}

func TestResultCache_Stats(t *testing.T) {
	cache := NewResultCache(5)
	cache.Set("a", 1)
	cache.Get("a")
	cache.Get("a")
	cache.Get("b")

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 5, stats.MaxSize)
	assert.Equal(t, int64(2), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)
	assert.InDelta(t, 2.0/3.0, stats.HitRatio, 1e-9)
}

func TestResultCache_ConcurrentAccess(t *testing.T) {
	cache := NewResultCache(8)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n+j)%12)
				cache.Set(key, j)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 8)
}
