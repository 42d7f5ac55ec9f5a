package planning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"cropwise/estimation-backend/internal/estimation"
)

// RecommendationCache holds scored crop lists keyed by profile fingerprint.
// Scoring is deterministic, so a cached list is exact until the catalog changes.
type RecommendationCache struct {
	data    map[string]*cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
	cleanup *time.Ticker
	done    chan struct{}
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	results    []estimation.RecommendationResult
	expiration time.Time
}

// CacheStats reports cache usage
type CacheStats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewRecommendationCache creates a cache and starts its cleanup loop
func NewRecommendationCache(ttl time.Duration) *RecommendationCache {
	cache := &RecommendationCache{
		data:    make(map[string]*cacheEntry),
		ttl:     ttl,
		cleanup: time.NewTicker(time.Minute),
		done:    make(chan struct{}),
		now:     time.Now,
	}

	go cache.cleanupLoop()

	return cache
}

// Get retrieves the results stored for key
func (c *RecommendationCache) Get(key string) ([]estimation.RecommendationResult, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiration) {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return cloneResults(entry.results), true
}

// Set stores results for key
func (c *RecommendationCache) Set(key string, results []estimation.RecommendationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &cacheEntry{
		results:    cloneResults(results),
		expiration: c.now().Add(c.ttl),
	}
}

// Size returns the number of entries in the cache, expired ones included
func (c *RecommendationCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

// Stats returns a snapshot of hit and miss counters
func (c *RecommendationCache) Stats() CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	stats := CacheStats{
		Size:   c.Size(),
		Hits:   hits,
		Misses: misses,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

func (c *RecommendationCache) cleanupLoop() {
	for {
		select {
		case <-c.cleanup.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *RecommendationCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
}

// Stop stops the cleanup goroutine
func (c *RecommendationCache) Stop() {
	c.cleanup.Stop()
	close(c.done)
}

// cloneResults copies results deeply enough that callers cannot reach the
// cached reason slices
func cloneResults(results []estimation.RecommendationResult) []estimation.RecommendationResult {
	if results == nil {
		return nil
	}
	out := make([]estimation.RecommendationResult, len(results))
	for i, r := range results {
		r.MatchReasons = slices.Clone(r.MatchReasons)
		out[i] = r
	}
	return out
}

// Fingerprint derives a cache key from every scoring input of a profile.
// Market preferences are order-insensitive.
func Fingerprint(profile estimation.FarmProfile) string {
	profile.MarketPreference = slices.Clone(profile.MarketPreference)
	slices.Sort(profile.MarketPreference)

	// FarmProfile holds only plain values, so Marshal cannot fail
	data, _ := json.Marshal(profile)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
