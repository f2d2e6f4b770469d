package intent

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

// Response cache defaults. Voice commands repeat constantly ("open chrome"
// several times a day), so even a small cache removes most model latency.
const (
	DefaultCacheSize = 100
	DefaultCacheTTL  = 300 * time.Second
)

// CacheKey derives the cache key for a prompt/model pair.
func CacheKey(prompt, model string) string {
	sum := md5.Sum([]byte(prompt + ":" + model))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	response string
	added    time.Time
}

// ResponseCache is a bounded in-memory cache of model responses with TTL
// expiry. A miss behaves identically to a cold call. Safe for concurrent use.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	max     int
	ttl     time.Duration
}

// NewResponseCache creates a cache holding at most max entries for ttl each.
func NewResponseCache(max int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		max:     max,
		ttl:     ttl,
	}
}

// Get returns the cached response for a prompt/model pair. Expired entries
// are removed and reported as misses.
func (rc *ResponseCache) Get(prompt, model string) (string, bool) {
	key := CacheKey(prompt, model)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[key]
	if !ok {
		return "", false
	}
	if time.Since(entry.added) > rc.ttl {
		delete(rc.entries, key)
		return "", false
	}
	return entry.response, true
}

// Put stores a response, evicting the oldest entry when the cache is full.
func (rc *ResponseCache) Put(prompt, model, response string) {
	key := CacheKey(prompt, model)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.entries[key]; !exists && len(rc.entries) >= rc.max {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range rc.entries {
			if oldestKey == "" || e.added.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.added
			}
		}
		delete(rc.entries, oldestKey)
	}

	rc.entries[key] = cacheEntry{response: response, added: time.Now()}
}

// Len returns the number of cached entries, including any not yet expired.
func (rc *ResponseCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
