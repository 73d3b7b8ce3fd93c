package services

import (
	"context"
	"strings"
	"time"

	"procurehub/internal/core/domain"
)

// ProjectService handles projects and their plan files
type ProjectService struct {
	repos *Repositories
	env   Env
}

// NewProjectService creates a new project service
func NewProjectService(repos *Repositories, env Env) *ProjectService {
	return &ProjectService{repos: repos, env: env}
}

// ProjectFilter narrows GetProjects
type ProjectFilter struct {
	GCID     string
	Statuses []domain.ProjectStatus
	Limit    int
}

// CreateProjectInput for creating a project
type CreateProjectInput struct {
	GCID          string               `json:"gcId"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Status        domain.ProjectStatus `json:"status"`
	EstimatedCost float64              `json:"estimatedCost"`
	Timeline      string               `json:"timeline"`
	Location      string               `json:"location"`
}

// UpdateProjectInput is a partial project update
type UpdateProjectInput struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	Status        *domain.ProjectStatus `json:"status"`
	EstimatedCost *float64              `json:"estimatedCost"`
	Timeline      *string               `json:"timeline"`
	Location      *string               `json:"location"`
}

// GetProjects lists projects newest first
func (s *ProjectService) GetProjects(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	if err := s.env.begin(ctx, "GetProjects"); err != nil {
		return nil, err
	}
	projects, err := s.repos.Projects.List(ctx, func(p domain.Project) bool {
		if filter.GCID != "" && p.GCID != filter.GCID {
			return false
		}
		return containsStatus(filter.Statuses, p.Status)
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(projects, func(p domain.Project) time.Time { return p.CreatedAt }, filter.Limit), nil
}

// GetProject gets a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if err := s.env.begin(ctx, "GetProject"); err != nil {
		return nil, err
	}
	p, err := s.repos.Projects.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, id)
	}
	return &p, nil
}

// CreateProject creates a project for an existing general contractor
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := s.env.begin(ctx, "CreateProject"); err != nil {
		return nil, err
	}

	gc, err := s.repos.Users.Get(ctx, input.GCID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.GCID)
	}
	if gc.Role != domain.RoleGC {
		return nil, domain.Validationf("user %s is not a general contractor", gc.ID)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("name is required")
	}
	if input.EstimatedCost < 0 {
		return nil, domain.Validationf("estimatedCost must not be negative")
	}
	status := input.Status
	if status == "" {
		status = domain.ProjectDraft
	}
	if !status.Valid() {
		return nil, domain.Validationf("invalid status %q", status)
	}

	now := s.env.now()
	p, err := s.repos.Projects.Create(ctx, domain.Project{
		ID:            s.env.newID(),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		GCID:          gc.ID,
		Status:        status,
		PlanFiles:     []domain.PlanFile{},
		EstimatedCost: input.EstimatedCost,
		Timeline:      input.Timeline,
		Location:      input.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject applies a partial update and bumps updatedAt
func (s *ProjectService) UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error) {
	if err := s.env.begin(ctx, "UpdateProject"); err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domain.Validationf("name cannot be empty")
	}
	if input.EstimatedCost != nil && *input.EstimatedCost < 0 {
		return nil, domain.Validationf("estimatedCost must not be negative")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.Validationf("invalid status %q", *input.Status)
	}

	p, err := s.repos.Projects.Update(ctx, id, func(p *domain.Project) error {
		if input.Name != nil {
			p.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Status != nil {
			p.Status = *input.Status
		}
		if input.EstimatedCost != nil {
			p.EstimatedCost = *input.EstimatedCost
		}
		if input.Timeline != nil {
			p.Timeline = *input.Timeline
		}
		if input.Location != nil {
			p.Location = *input.Location
		}
		p.Touch(s.env.now())
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, id)
	}
	return &p, nil
}

// AttachFile appends plan file metadata to a project
func (s *ProjectService) AttachFile(ctx context.Context, projectID string, file domain.PlanFile) (*domain.Project, error) {
	if err := s.env.begin(ctx, "AttachFile"); err != nil {
		return nil, err
	}
	p, err := s.repos.Projects.Update(ctx, projectID, func(p *domain.Project) error {
		p.PlanFiles = append(p.PlanFiles, file)
		p.Touch(s.env.now())
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound, projectID)
	}
	return &p, nil
}
