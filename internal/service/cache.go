package service

import (
	"sync"
	"time"

	"github.com/you/go-clonar-search/internal/providers"
)

const defaultCacheTTL = time.Hour

type cacheEntry struct {
	data      []providers.Result
	createdAt time.Time
}

// queryCache memoizes filtered search results per (fieldType, query) key.
// Expiry is enforced lazily on Get; there is no background sweep. An optional
// maxEntries cap evicts oldest-inserted entries first; 0 disables the cap.
type queryCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	order      []string
	ttl        time.Duration
	maxEntries int
}

func newQueryCache(ttl time.Duration, maxEntries int) *queryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &queryCache{
		entries:    make(map[string]cacheEntry),
		order:      make([]string, 0, 64),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *queryCache) Get(key string) ([]providers.Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > c.ttl {
		c.mu.Lock()
		// re-check under the write lock: a concurrent Set may have replaced it
		if cur, ok := c.entries[key]; ok && cur.createdAt.Equal(e.createdAt) {
			delete(c.entries, key)
			c.removeFromOrder(key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

func (c *queryCache) Set(key string, data []providers.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{data: data, createdAt: time.Now()}
	if c.maxEntries > 0 {
		for len(c.entries) > c.maxEntries && len(c.order) > 0 {
			victim := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, victim)
		}
	}
}

// Clear drops every entry. Administrative/testing use only; the search path
// never calls it.
func (c *queryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.order = c.order[:0]
	c.mu.Unlock()
}

func (c *queryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
