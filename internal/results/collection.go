// Package results holds the bounded in-memory collection of recent search
// results. Freshly created entries are prepended here so they show up on the
// map before the next search round trip; edits rely on a future fetch and do
// not patch the collection.
package results

import (
	"sync"

	"mapdex/internal/models"
)

// DefaultCap bounds the collection when no explicit capacity is configured.
const DefaultCap = 50

// Collection is a mutex-guarded, bounded list of search results, newest
// first.
type Collection struct {
	mu    sync.Mutex
	cap   int
	items []models.SearchResult
}

// NewCollection creates a collection bounded to max items.
func NewCollection(max int) *Collection {
	if max <= 0 {
		max = DefaultCap
	}
	return &Collection{cap: max}
}

// Prepend inserts r at the front of the collection. An existing result with
// the same id is replaced rather than duplicated.
func (c *Collection) Prepend(r models.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]models.SearchResult, 0, len(c.items)+1)
	kept = append(kept, r)
	for _, it := range c.items {
		if it.ID != r.ID {
			kept = append(kept, it)
		}
	}
	if len(kept) > c.cap {
		kept = kept[:c.cap]
	}
	c.items = kept
}

// Recent returns a copy of the collection, newest first.
func (c *Collection) Recent() []models.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.SearchResult, len(c.items))
	copy(out, c.items)
	return out
}

// Merge overlays the collection onto a search response: recent results come
// first, and response rows with the same id are dropped.
func (c *Collection) Merge(rs []models.SearchResult) []models.SearchResult {
	recent := c.Recent()
	seen := make(map[string]bool, len(recent))
	for _, r := range recent {
		seen[r.ID] = true
	}

	out := append([]models.SearchResult{}, recent...)
	for _, r := range rs {
		if !seen[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
