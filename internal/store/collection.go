package store

import (
	"sync"

	"web-travelsite/internal/content"
)

// Collection is the in-memory mirror of one backend collection. It holds
// whatever the backend last returned and is never persisted.
type Collection[T content.Entity] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollection[T content.Entity]() *Collection[T] {
	return &Collection[T]{}
}

// Replace swaps the whole collection for items.
func (c *Collection[T]) Replace(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = cp
}

func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Put replaces the entry whose id matches item and reports whether one was
// found. Unmatched items are appended.
func (c *Collection[T]) Put(item T) bool {
	id := item.EntityID()

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items[i] = item
			return true
		}
	}
	c.items = append(c.items, item)
	return false
}

// Remove drops every entry with the given id and reports whether any existed.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(c.items)
	c.items = kept
	return removed
}

func (c *Collection[T]) Get(id string) (T, bool) {
	return c.FindBy(func(it T) bool { return it.EntityID() == id })
}

func (c *Collection[T]) FindBy(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// List returns a copy safe for the caller to sort or slice.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
