package cache

import (
	"log"
	"sync"
	"time"

	"github.com/agenthands/veracity/internal/core/model"
	"github.com/agenthands/veracity/internal/store"
)

// State is the persisted cache document: the UTC day it belongs to and the
// cached result sets keyed by (mode, query, result count).
type State struct {
	Date string                       `json:"date"`
	Data map[string][]model.SearchHit `json:"data"`
}

// ResultCache keeps raw search results for the current UTC day. When the date
// rolls over the whole cache is discarded at once; the daily quota already
// bounds how many entries one day can produce, so per-entry expiry would add
// nothing.
type ResultCache struct {
	store store.Store

	mu      sync.Mutex
	date    string
	entries map[string][]model.SearchHit

	// Now supplies the clock used to detect the date rollover; tests
	// override it.
	Now func() time.Time
}

// New loads any persisted cache state. Entries from a previous day survive
// loading but are discarded on first access.
func New(st store.Store) *ResultCache {
	c := &ResultCache{
		store:   st,
		entries: map[string][]model.SearchHit{},
		Now:     time.Now,
	}
	var s State
	ok, err := st.Load(&s)
	if err != nil {
		log.Printf("Warning: failed to load search cache: %v", err)
	}
	if ok && s.Data != nil {
		c.date = s.Date
		c.entries = s.Data
	}
	return c
}

func (c *ResultCache) today() string {
	return c.Now().UTC().Format("2006-01-02")
}

// refresh discards every entry when the stored date is stale. Callers hold mu.
func (c *ResultCache) refresh() {
	if today := c.today(); c.date != today {
		c.date = today
		c.entries = map[string][]model.SearchHit{}
	}
}

// Get returns the cached hits for key. The boolean reports a genuine hit: an
// empty result set from a real search round trip is cached too, and comes
// back as (empty, true) so the caller does not re-spend quota on it.
func (c *ResultCache) Get(key string) ([]model.SearchHit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
	hits, ok := c.entries[key]
	return hits, ok
}

// Put stores hits under key, replacing any previous entry, and persists the
// whole cache. A failed save is logged and ignored; the in-memory cache stays
// authoritative for the rest of the process lifetime.
func (c *ResultCache) Put(key string, hits []model.SearchHit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
	c.entries[key] = hits
	if err := c.store.Save(State{Date: c.date, Data: c.entries}); err != nil {
		log.Printf("Warning: failed to persist search cache: %v", err)
	}
}

// Len reports how many result sets are cached for the current day.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh()
	return len(c.entries)
}
