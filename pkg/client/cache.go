package client

import (
	"sync"
	"time"
)

// CacheTTL is how long a successful GET response is served from memory.
const CacheTTL = 30 * time.Second

type cacheEntry struct {
	body     []byte
	status   int
	storedAt time.Time
}

type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

// get returns the entry for key when it is younger than the TTL. Stale
// entries are evicted on read.
func (c *responseCache) get(key string, now time.Time) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	if now.Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *responseCache) put(key string, entry cacheEntry) {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

func (c *responseCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
