package suggest

import (
	"math"
	"strconv"
	"sync"
)

// ResultCache remembers ranked results per (prefix, limit) for one immutable Index.
// It is never invalidated: a Swapper creates a fresh cache with every snapshot.
type ResultCache struct {
	results     map[string][]Suggestion
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewResultCache returns a cache holding at most maxEntries results.
// A non-positive maxEntries disables caching.
func NewResultCache(maxEntries int) *ResultCache {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &ResultCache{
		results:    make(map[string][]Suggestion, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(prefix string, limit int) string {
	return strconv.Itoa(limit) + ":" + prefix
}

// Get returns the cached result for an already normalized prefix.
func (rc *ResultCache) Get(prefix string, limit int) ([]Suggestion, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := cacheKey(prefix, limit)
	res, ok := rc.results[key]
	if !ok {
		rc.misses++
		return nil, false
	}
	rc.hits++
	rc.accessTime[key] = rc.nextAccessTime()
	return res, true
}

// Put stores res. Callers must not modify res afterwards.
func (rc *ResultCache) Put(prefix string, limit int, res []Suggestion) {
	if rc.maxEntries == 0 {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := cacheKey(prefix, limit)
	if _, ok := rc.results[key]; !ok && len(rc.results) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.results[key] = res
	rc.accessTime[key] = rc.nextAccessTime()
}

// Stats reports the cache size and hit counters.
func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cacheEntries": len(rc.results),
		"maxEntries":   rc.maxEntries,
		"cacheHits":    int(rc.hits),
		"cacheMisses":  int(rc.misses),
	}
}

func (rc *ResultCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(rc.results, oldestKey)
		delete(rc.accessTime, oldestKey)
	}
}
