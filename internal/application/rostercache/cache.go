package rostercache

import (
	"sync"
	"time"

	"celltrack/internal/domain/roster"
)

// Defaults tuned for a capture screen that reloads on navigation. Entries
// are small (one roster per event) so the bound is about hygiene, not
// memory pressure.
const (
	DefaultTTL        = 2 * time.Minute
	DefaultMaxEntries = 64
)

type entry struct {
	roster   []roster.Entry
	storedAt time.Time
}

// Cache is a TTL cache of merged rosters keyed by event id. It only ever
// serves copies, so callers can edit a checked-out roster without
// poisoning later reads. Writes happen through the orchestrators, which
// call Invalidate after a successful save.
type Cache struct {
	ttl time.Duration
	max int
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a Cache. Non-positive ttl or maxEntries fall back to the
// package defaults. now is injectable for tests; nil means time.Now.
func New(ttl time.Duration, maxEntries int, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		max:     maxEntries,
		now:     now,
		entries: map[string]entry{},
	}
}

// Get returns the cached roster for eventID, or ok=false when missing or
// expired. Expired entries are dropped on read.
func (c *Cache) Get(eventID string) ([]roster.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[eventID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, eventID)
		return nil, false
	}
	return copyRoster(e.roster), true
}

// Put stores a roster for eventID, evicting the stalest entry when the
// cache is full.
func (c *Cache) Put(eventID string, entries []roster.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[eventID]; !exists && len(c.entries) >= c.max {
		c.evictOldestLocked()
	}
	c.entries[eventID] = entry{roster: copyRoster(entries), storedAt: c.now()}
}

// Invalidate drops the cached roster for eventID. Call after any write
// that changes the roster or the current week record.
func (c *Cache) Invalidate(eventID string) {
	c.mu.Lock()
	delete(c.entries, eventID)
	c.mu.Unlock()
}

// Len reports the number of live entries, counting expired ones that have
// not been read yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

func copyRoster(in []roster.Entry) []roster.Entry {
	out := make([]roster.Entry, len(in))
	copy(out, in)
	return out
}
