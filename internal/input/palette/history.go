package palette

import (
	"slices"
	"sync"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
)

// DefaultHistorySize is the number of recent actions remembered.
const DefaultHistorySize = 20

// History tracks recently executed actions, most recent first.
type History struct {
	mu    sync.Mutex
	items []action.Name
	size  int
}

// NewHistory creates a history holding up to size names.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add moves name to the front, dropping the oldest entry when full.
func (h *History) Add(name action.Name) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.items, name); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, name)
	if len(h.items) > h.size {
		h.items = h.items[:h.size]
	}
}

// Position returns the recency rank of name (0 = most recent) or -1.
func (h *History) Position(name action.Name) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.items, name)
}

// Recent returns up to limit names, most recent first.
func (h *History) Recent(limit int) []action.Name {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	return slices.Clone(h.items[:limit])
}
