package repositories

import (
	"context"
	"sync"

	"procurehub/internal/core/domain"
)

// memoryRepository keeps entities in insertion order behind a mutex
type memoryRepository[T domain.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// cloner is implemented by entities holding slices or pointers
type cloner[T any] interface {
	Clone() T
}

// clone returns a copy of v that shares no mutable state with it
func clone[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository[T domain.Entity]() Repository[T] {
	return &memoryRepository[T]{items: make(map[string]T)}
}

func (r *memoryRepository[T]) List(_ context.Context, match func(T) bool) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		v := r.items[id]
		if match == nil || match(v) {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

func (r *memoryRepository[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, notFound(id)
	}
	return clone(v), nil
}

func (r *memoryRepository[T]) Create(_ context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.GetID()
	if id == "" {
		var zero T
		return zero, domain.Validationf("id is required")
	}
	if _, ok := r.items[id]; ok {
		var zero T
		return zero, duplicate(id)
	}
	r.items[id] = clone(v)
	r.order = append(r.order, id)
	return clone(v), nil
}

func (r *memoryRepository[T]) Update(_ context.Context, id string, patch func(*T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		var zero T
		return zero, notFound(id)
	}
	v := clone(stored)
	if err := patch(&v); err != nil {
		var zero T
		return zero, err
	}
	if v.GetID() != id {
		var zero T
		return zero, domain.Validationf("id cannot change")
	}
	r.items[id] = v
	return clone(v), nil
}

func (r *memoryRepository[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
