package repositories

import (
	"context"
	"fmt"

	"procurehub/internal/core/domain"
)

// Repository defines the generic entity repository the services depend on
type Repository[T domain.Entity] interface {
	// List returns a fresh slice of the items matching match (all when nil)
	List(ctx context.Context, match func(T) bool) ([]T, error)
	// Get wraps domain.ErrNotFound when id is unknown
	Get(ctx context.Context, id string) (T, error)
	// Create fails with domain.ErrDuplicateID when the id is taken
	Create(ctx context.Context, v T) (T, error)
	// Update applies patch to a copy of the stored item and saves it when patch succeeds
	Update(ctx context.Context, id string, patch func(*T) error) (T, error)
	Delete(ctx context.Context, id string) error
}

func notFound(id string) error {
	return domain.NotFound(domain.ErrNotFound, id)
}

func duplicate(id string) error {
	return fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
}
