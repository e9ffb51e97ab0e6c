package compound

import "sync"

// CacheEntry is a cached resolution. Found is false for a cached miss.
type CacheEntry struct {
	Info  Info
	Found bool
}

// Cache stores resolutions by cleaned formula.
type Cache interface {
	Get(key string) (CacheEntry, bool)
	Set(key string, entry CacheEntry)
	Clear()
}

// MemoryCache is an in-process Cache, safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CacheEntry)}
}

// Get implements Cache.
func (c *MemoryCache) Get(key string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Set implements Cache.
func (c *MemoryCache) Set(key string, entry CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Clear implements Cache.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
