package feed

import (
	"sort"
	"sync"
	"time"

	"github.com/golgrax/bayanihan-alerts/internal/domain"
)

// memoryCache is a thread-safe key/value store with timestamps. Entries are
// never evicted by age — stale entries stay eligible for fallback until an
// explicit clear.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data      any
	timestamp time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]cacheEntry)}
}

func (c *memoryCache) get(key string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e, ok
}

func (c *memoryCache) put(key string, data any, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{data: data, timestamp: now}
}

func (c *memoryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *memoryCache) stats(ttl time.Duration) domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return domain.CacheStats{Size: len(c.entries), Keys: keys, TTL: ttl}
}
