package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"procurehub/internal/adapters/persistence/repositories"
	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/domain"
	"procurehub/internal/metrics"

	"github.com/google/uuid"
)

// Latency simulates network delay in front of every mock API call
type Latency struct {
	Delay time.Duration
}

// Wait sleeps for Delay, or returns early with ctx.Err() when ctx ends first
func (l Latency) Wait(ctx context.Context) error {
	if l.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(l.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Env carries the collaborators every service shares
type Env struct {
	Latency Latency
	Now     func() time.Time
	NewID   func() string
}

// NewEnv returns an Env on the wall clock with random UUIDs
func NewEnv(delay time.Duration) Env {
	return Env{
		Latency: Latency{Delay: delay},
		Now:     time.Now,
		NewID:   func() string { return uuid.New().String() },
	}
}

// begin counts the call and applies the simulated latency
func (e Env) begin(ctx context.Context, op string) error {
	metrics.APICalls.WithLabelValues(op).Inc()
	return e.Latency.Wait(ctx)
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) newID() string {
	if e.NewID == nil {
		return uuid.New().String()
	}
	return e.NewID()
}

// Repositories bundles one repository per entity
type Repositories struct {
	Users         repositories.Repository[domain.User]
	Projects      repositories.Repository[domain.Project]
	Bids          repositories.Repository[domain.Bid]
	Notifications repositories.Repository[domain.Notification]
	Loans         repositories.Repository[domain.Loan]
	Orders        repositories.Repository[domain.Order]
	Payments      repositories.Repository[domain.Payment]
	Inventory     repositories.Repository[domain.InventoryItem]
}

// NewStorageRepositories persists every entity through the storage adapters
func NewStorageRepositories(a *storage.Adapters) *Repositories {
	return &Repositories{
		Users:         repositories.NewStorageRepository(a.Users.Collection),
		Projects:      repositories.NewStorageRepository(a.Projects.Collection),
		Bids:          repositories.NewStorageRepository(a.Bids.Collection),
		Notifications: repositories.NewStorageRepository(a.Notifications.Collection),
		Loans:         repositories.NewStorageRepository(a.Loans),
		Orders:        repositories.NewStorageRepository(a.Orders),
		Payments:      repositories.NewStorageRepository(a.Payments),
		Inventory:     repositories.NewStorageRepository(a.Inventory),
	}
}

// NewMemoryRepositories keeps every entity in process memory
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:         repositories.NewMemoryRepository[domain.User](),
		Projects:      repositories.NewMemoryRepository[domain.Project](),
		Bids:          repositories.NewMemoryRepository[domain.Bid](),
		Notifications: repositories.NewMemoryRepository[domain.Notification](),
		Loans:         repositories.NewMemoryRepository[domain.Loan](),
		Orders:        repositories.NewMemoryRepository[domain.Order](),
		Payments:      repositories.NewMemoryRepository[domain.Payment](),
		Inventory:     repositories.NewMemoryRepository[domain.InventoryItem](),
	}
}

// newestFirst sorts by the given timestamp descending and applies limit when positive.
// items arrive in insertion order; equal timestamps put the later inserted item first.
func newestFirst[T any](items []T, at func(T) time.Time, limit int) []T {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// notFoundAs rewrites a generic not-found from a repository into the entity specific error
func notFoundAs(err error, specific error, id string) error {
	if err != nil && errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(specific, id)
	}
	return err
}

func containsStatus[S comparable](set []S, v S) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
