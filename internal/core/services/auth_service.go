package services

import (
	"context"
	"log"
	"net/mail"
	"strings"

	"procurehub/internal/config"
	"procurehub/internal/core/domain"
	"procurehub/internal/pkg/jwt"
	"procurehub/internal/pkg/password"
)

// AuthService handles registration and the mock login
type AuthService struct {
	repos *Repositories
	cfg   *config.Config
	env   Env
}

// NewAuthService creates a new auth service
func NewAuthService(repos *Repositories, cfg *config.Config, env Env) *AuthService {
	return &AuthService{repos: repos, cfg: cfg, env: env}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	Phone    string      `json:"phone"`
	Company  string      `json:"company"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *domain.UserResponse `json:"user"`
	AccessToken string               `json:"accessToken"`
	ExpiresIn   int                  `json:"expiresIn"`
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if err := s.env.begin(ctx, "Register"); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("name is required")
	}
	if !input.Role.Valid() || input.Role == domain.RoleAdmin {
		return nil, domain.Validationf("invalid role %q", input.Role)
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.Validationf("password must be at least %d characters", password.MinLength)
	}

	if _, found, err := findUserByEmail(ctx, s.repos, email); err != nil {
		return nil, err
	} else if found {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users.Create(ctx, domain.User{
		ID:           s.env.newID(),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
		Company:      strings.TrimSpace(input.Company),
		PasswordHash: hashed,
		CreatedAt:    s.env.now(),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Role)
	return s.respond(&user)
}

// Login signs in by email. Unknown emails fail with ErrUserNotFound; passwords
// are only checked when the mock is configured to verify them.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*AuthResponse, error) {
	if err := s.env.begin(ctx, "Login"); err != nil {
		return nil, err
	}

	user, found, err := findUserByEmail(ctx, s.repos, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}

	if !s.cfg.Mock.AcceptAnyPassword {
		if user.PasswordHash == "" || !password.Verify(pass, user.PasswordHash) {
			return nil, domain.ErrInvalidCredentials
		}
	}

	log.Printf("✅ User logged in: %s", user.Email)
	return s.respond(&user)
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if err := s.env.begin(ctx, "Me"); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, userID)
	}
	return &user, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

func (s *AuthService) respond(user *domain.User) (*AuthResponse, error) {
	token, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		ExpiresIn:   s.cfg.JWT.AccessTokenMins * 60,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.Validationf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.Validationf("invalid email %q", email)
	}
	return email, nil
}

func findUserByEmail(ctx context.Context, repos *Repositories, email string) (domain.User, bool, error) {
	email = strings.TrimSpace(email)
	users, err := repos.Users.List(ctx, func(u domain.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil || len(users) == 0 {
		return domain.User{}, false, err
	}
	return users[0], true, nil
}
