package storage

import (
	"context"

	"procurehub/internal/core/domain"
)

// ProjectStorage persists projects
type ProjectStorage struct {
	*Collection[domain.Project]
}

func NewProjectStorage(s *Store) *ProjectStorage {
	return &ProjectStorage{Collection: NewCollection[domain.Project](s, KeyProjects)}
}

func (p *ProjectStorage) GetProjects(ctx context.Context) []domain.Project { return p.All(ctx) }

func (p *ProjectStorage) SetProjects(ctx context.Context, projects []domain.Project) {
	p.Replace(ctx, projects)
}

// AddProject inserts or replaces by id
func (p *ProjectStorage) AddProject(ctx context.Context, project domain.Project) {
	p.Upsert(ctx, project)
}

func (p *ProjectStorage) GetProjectByID(ctx context.Context, id string) (domain.Project, bool) {
	return p.ByID(ctx, id)
}

func (p *ProjectStorage) GetProjectsByGC(ctx context.Context, gcID string) []domain.Project {
	return p.Find(ctx, func(pr domain.Project) bool { return pr.GCID == gcID })
}

func (p *ProjectStorage) GetProjectsByStatus(ctx context.Context, status domain.ProjectStatus) []domain.Project {
	return p.Find(ctx, func(pr domain.Project) bool { return pr.Status == status })
}
