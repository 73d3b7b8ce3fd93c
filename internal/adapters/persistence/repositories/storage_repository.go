package repositories

import (
	"context"

	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/domain"
)

// storageRepository persists through a storage collection, so a durable
// backend makes the mock API durable too
type storageRepository[T domain.Entity] struct {
	coll *storage.Collection[T]
}

// NewStorageRepository creates a repository over coll
func NewStorageRepository[T domain.Entity](coll *storage.Collection[T]) Repository[T] {
	return &storageRepository[T]{coll: coll}
}

func (r *storageRepository[T]) List(ctx context.Context, match func(T) bool) ([]T, error) {
	if !r.coll.Available() {
		return nil, domain.ErrStorageUnavailable
	}
	if match == nil {
		return r.coll.All(ctx), nil
	}
	return r.coll.Find(ctx, match), nil
}

func (r *storageRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if !r.coll.Available() {
		return zero, domain.ErrStorageUnavailable
	}
	v, ok := r.coll.ByID(ctx, id)
	if !ok {
		return zero, notFound(id)
	}
	return v, nil
}

func (r *storageRepository[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if !r.coll.Available() {
		return zero, domain.ErrStorageUnavailable
	}
	id := v.GetID()
	if id == "" {
		return zero, domain.Validationf("id is required")
	}
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		for _, it := range items {
			if it.GetID() == id {
				return nil, duplicate(id)
			}
		}
		return append(items, v), nil
	})
	if err != nil {
		return zero, err
	}
	return v, nil
}

func (r *storageRepository[T]) Update(ctx context.Context, id string, patch func(*T) error) (T, error) {
	var zero, updated T
	if !r.coll.Available() {
		return zero, domain.ErrStorageUnavailable
	}
	err := r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() != id {
				continue
			}
			v := items[i]
			if err := patch(&v); err != nil {
				return nil, err
			}
			if v.GetID() != id {
				return nil, domain.Validationf("id cannot change")
			}
			items[i] = v
			updated = v
			return items, nil
		}
		return nil, notFound(id)
	})
	if err != nil {
		return zero, err
	}
	return updated, nil
}

func (r *storageRepository[T]) Delete(ctx context.Context, id string) error {
	if !r.coll.Available() {
		return domain.ErrStorageUnavailable
	}
	return r.coll.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].GetID() == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, notFound(id)
	})
}
