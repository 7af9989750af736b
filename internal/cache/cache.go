package cache

import (
	"sync"
	"time"
)

// Key identifies one cached summary. Keeping the user id structured
// (instead of flattened into a string) lets eviction stay user-scoped.
type Key struct {
	UserID   int64
	Fragment string
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a process-lifetime TTL map. Entries are treated as immutable
// once stored, so only the map itself is guarded; expiry is checked
// lazily at read time and never depends on a background sweep.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry
}

func New() *Cache {
	return &Cache{entries: make(map[Key]entry)}
}

func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key Key, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// InvalidateUser evicts every entry belonging to one user, leaving other
// users' cached summaries in place.
func (c *Cache) InvalidateUser(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.UserID == userID {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
