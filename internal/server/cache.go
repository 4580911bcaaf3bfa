package server

import (
	"sync"
	"time"

	"github.com/axdriver/axdriver/pkg/automation"
)

// cacheEntry holds a resolved element with its resolution time.
type cacheEntry struct {
	el *automation.UIElement
	at time.Time
}

// ElementCache is a TTL cache of resolved elements keyed by stable ID. It
// lets `#id` selectors coming back from an agent skip the full tree search
// they would otherwise trigger. Entries are only trusted briefly; a write
// action invalidates everything since it may reshape the tree.
type ElementCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewElementCache creates a cache. A ttl of 0 disables caching.
func NewElementCache(ttl time.Duration) *ElementCache {
	return &ElementCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached element for a stable ID if it is within TTL.
func (c *ElementCache) Get(id string) (*automation.UIElement, bool) {
	if c.ttl == 0 || id == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok || time.Since(entry.at) >= c.ttl {
		return nil, false
	}
	return entry.el, true
}

// Put stores elements under their stable IDs. Elements without one are
// skipped.
func (c *ElementCache) Put(els ...*automation.UIElement) {
	if c.ttl == 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, el := range els {
		if el == nil {
			continue
		}
		if id := el.ID(); id != "" {
			c.entries[id] = cacheEntry{el: el, at: now}
		}
	}
}

// InvalidateAll clears the cache.
func (c *ElementCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
