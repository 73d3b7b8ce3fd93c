package services

import (
	"context"
	"strings"
	"time"

	"procurehub/internal/core/domain"
)

// UserService handles user profiles
type UserService struct {
	repos *Repositories
	env   Env
}

// NewUserService creates a new user service
func NewUserService(repos *Repositories, env Env) *UserService {
	return &UserService{repos: repos, env: env}
}

// UserFilter narrows GetUsers
type UserFilter struct {
	Role     domain.Role
	Verified *bool
	Limit    int
}

// UpdateUserInput is a partial profile update. Role cannot be changed.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Verified *bool   `json:"verified"`
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := s.env.begin(ctx, "GetUser"); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, id)
	}
	return &user, nil
}

// GetUsers lists users newest first
func (s *UserService) GetUsers(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	if err := s.env.begin(ctx, "GetUsers"); err != nil {
		return nil, err
	}
	users, err := s.repos.Users.List(ctx, func(u domain.User) bool {
		if filter.Role != "" && u.Role != filter.Role {
			return false
		}
		if filter.Verified != nil && u.Verified != *filter.Verified {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(users, func(u domain.User) time.Time { return u.CreatedAt }, filter.Limit), nil
}

// UpdateUser applies a partial update
func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	if err := s.env.begin(ctx, "UpdateUser"); err != nil {
		return nil, err
	}

	var email string
	if input.Email != nil {
		e, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		other, found, err := findUserByEmail(ctx, s.repos, e)
		if err != nil {
			return nil, err
		}
		if found && other.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		email = e
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domain.Validationf("name cannot be empty")
	}

	user, err := s.repos.Users.Update(ctx, id, func(u *domain.User) error {
		if input.Name != nil {
			u.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			u.Email = email
		}
		if input.Phone != nil {
			u.Phone = strings.TrimSpace(*input.Phone)
		}
		if input.Company != nil {
			u.Company = strings.TrimSpace(*input.Company)
		}
		if input.Verified != nil {
			u.Verified = *input.Verified
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, id)
	}
	return &user, nil
}
