package repositories

import (
	"context"
	"errors"
	"testing"

	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositoryImplementations() map[string]func() Repository[domain.Project] {
	return map[string]func() Repository[domain.Project]{
		"memory": func() Repository[domain.Project] {
			return NewMemoryRepository[domain.Project]()
		},
		"storage": func() Repository[domain.Project] {
			s := storage.NewStore(storage.NewMemoryBackend())
			return NewStorageRepository(storage.NewProjectStorage(s).Collection)
		},
	}
}

func TestRepository_CRUD(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()

			_, err := repo.Create(ctx, domain.Project{ID: "p1", Name: "One", Status: domain.ProjectDraft})
			require.NoError(t, err)
			_, err = repo.Create(ctx, domain.Project{ID: "p2", Name: "Two", Status: domain.ProjectBidding})
			require.NoError(t, err)

			_, err = repo.Create(ctx, domain.Project{ID: "p1"})
			assert.ErrorIs(t, err, domain.ErrConflict)

			got, err := repo.Get(ctx, "p2")
			require.NoError(t, err)
			assert.Equal(t, "Two", got.Name)

			_, err = repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrNotFound)

			updated, err := repo.Update(ctx, "p1", func(p *domain.Project) error {
				p.Status = domain.ProjectActive
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, domain.ProjectActive, updated.Status)

			list, err := repo.List(ctx, func(p domain.Project) bool { return p.Status == domain.ProjectActive })
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "p1", list[0].ID)

			require.NoError(t, repo.Delete(ctx, "p1"))
			assert.ErrorIs(t, repo.Delete(ctx, "p1"), domain.ErrNotFound)

			all, err := repo.List(ctx, nil)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestRepository_FailedPatchLeavesItemUntouched(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()
			_, err := repo.Create(ctx, domain.Project{ID: "p1", Name: "Original"})
			require.NoError(t, err)

			boom := errors.New("boom")
			_, err = repo.Update(ctx, "p1", func(p *domain.Project) error {
				p.Name = "Changed"
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := repo.Get(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Original", got.Name)
		})
	}
}

func TestRepository_ListReturnsFreshSlice(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()
			_, err := repo.Create(ctx, domain.Project{ID: "p1", Name: "One"})
			require.NoError(t, err)

			list, err := repo.List(ctx, nil)
			require.NoError(t, err)
			list[0].Name = "mutated"

			got, err := repo.Get(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "One", got.Name)
		})
	}
}

func TestRepository_ReadsDoNotShareSlices(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()
			_, err := repo.Create(ctx, domain.Project{ID: "p1", PlanFiles: []domain.PlanFile{{ID: "f1", Name: "site.pdf"}}})
			require.NoError(t, err)

			list, err := repo.List(ctx, nil)
			require.NoError(t, err)
			list[0].PlanFiles[0].Name = "mutated"

			got, err := repo.Get(ctx, "p1")
			require.NoError(t, err)
			got.PlanFiles[0].Name = "mutated again"

			got, err = repo.Get(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "site.pdf", got.PlanFiles[0].Name)
		})
	}
}

func TestRepository_FailedPatchLeavesSlicesUntouched(t *testing.T) {
	for name, newRepo := range repositoryImplementations() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo()
			_, err := repo.Create(ctx, domain.Project{ID: "p1", PlanFiles: []domain.PlanFile{{ID: "f1", Name: "site.pdf"}}})
			require.NoError(t, err)

			boom := errors.New("boom")
			_, err = repo.Update(ctx, "p1", func(p *domain.Project) error {
				p.PlanFiles[0].Name = "changed"
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := repo.Get(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "site.pdf", got.PlanFiles[0].Name)
		})
	}
}

func TestMemoryRepository_CreateCopiesInput(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[domain.Bid]()

	in := domain.Bid{ID: "b1", Contractor: &domain.ContractorSnapshot{Name: "Acme", Specializations: []string{"electrical"}}}
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)
	in.Contractor.Name = "changed"
	in.Contractor.Specializations[0] = "changed"

	got, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got.Contractor)
	assert.Equal(t, "Acme", got.Contractor.Name)
	assert.Equal(t, []string{"electrical"}, got.Contractor.Specializations)
}

func TestStorageRepository_UnavailableStore(t *testing.T) {
	ctx := context.Background()
	repo := NewStorageRepository(storage.NewCollection[domain.Bid](storage.NewStore(nil), storage.KeyBids))

	_, err := repo.List(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	_, err = repo.Create(ctx, domain.Bid{ID: "b1"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
