package search

import (
	"sync"

	"lumen/internal/apps"
)

// Catalog is the shared, read-write-locked application index. The
// desktop-entry watcher writes it; IPC handlers and the UI read it from
// any goroutine.
type Catalog struct {
	mu    sync.RWMutex
	index *Index
}

// NewCatalog starts with an index over the given entries.
func NewCatalog(entries []apps.Entry) *Catalog {
	return &Catalog{index: NewIndex(entries)}
}

// Update swaps in a freshly scanned entry list.
func (c *Catalog) Update(entries []apps.Entry) {
	index := NewIndex(entries)
	c.mu.Lock()
	c.index = index
	c.mu.Unlock()
}

// Query ranks the current entries against a query. See Index.Query.
func (c *Catalog) Query(query string, limit int) []apps.Entry {
	c.mu.RLock()
	index := c.index
	c.mu.RUnlock()
	if index == nil {
		return nil
	}
	return index.Query(query, limit)
}

// Size returns the number of indexed entries.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.index == nil {
		return 0
	}
	return len(c.index.entries)
}
