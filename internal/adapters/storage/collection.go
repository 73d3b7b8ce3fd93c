package storage

import (
	"context"

	"procurehub/internal/core/domain"
)

// Collection keeps a list of entities under a single key
type Collection[T domain.Entity] struct {
	store *Store
	key   string
}

// NewCollection binds a collection to key
func NewCollection[T domain.Entity](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string { return c.key }

// Available reports whether the underlying store has a backend
func (c *Collection[T]) Available() bool { return c.store.Available() }

// All returns every stored item, never nil
func (c *Collection[T]) All(ctx context.Context) []T {
	items := Get(ctx, c.store, c.key, []T{})
	if items == nil {
		return []T{}
	}
	return items
}

// Replace overwrites the whole collection
func (c *Collection[T]) Replace(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	Set(ctx, c.store, c.key, items)
}

// Mutate applies fn to the stored list atomically. Nothing is written when fn fails.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	return Update(ctx, c.store, c.key, []T{}, func(items []T) ([]T, error) {
		if items == nil {
			items = []T{}
		}
		return fn(items)
	})
}

// Upsert replaces the item with the same id, or appends it
func (c *Collection[T]) Upsert(ctx context.Context, item T) {
	_ = c.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() == item.GetID() {
				items[i] = item
				return items, nil
			}
		}
		return append(items, item), nil
	})
}

// Find returns the items matching pred in stored order
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) []T {
	out := []T{}
	for _, item := range c.All(ctx) {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// ByID returns the item with id
func (c *Collection[T]) ByID(ctx context.Context, id string) (T, bool) {
	for _, item := range c.All(ctx) {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the item with id and reports whether it existed
func (c *Collection[T]) Remove(ctx context.Context, id string) bool {
	removed := false
	_ = c.Mutate(ctx, func(items []T) ([]T, error) {
		out := items[:0]
		for _, item := range items {
			if item.GetID() == id {
				removed = true
				continue
			}
			out = append(out, item)
		}
		return out, nil
	})
	return removed
}
