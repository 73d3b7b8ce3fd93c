package storage

import (
	"context"
	"strings"

	"procurehub/internal/core/domain"
)

// UserStorage persists users and the signed-in user
type UserStorage struct {
	*Collection[domain.User]
}

func NewUserStorage(s *Store) *UserStorage {
	return &UserStorage{Collection: NewCollection[domain.User](s, KeyUsers)}
}

func (u *UserStorage) GetUsers(ctx context.Context) []domain.User { return u.All(ctx) }

func (u *UserStorage) SetUsers(ctx context.Context, users []domain.User) { u.Replace(ctx, users) }

func (u *UserStorage) AddUser(ctx context.Context, user domain.User) { u.Upsert(ctx, user) }

func (u *UserStorage) GetUserByID(ctx context.Context, id string) (domain.User, bool) {
	return u.ByID(ctx, id)
}

// GetUserByEmail matches case-insensitively
func (u *UserStorage) GetUserByEmail(ctx context.Context, email string) (domain.User, bool) {
	email = strings.TrimSpace(email)
	for _, user := range u.All(ctx) {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return domain.User{}, false
}

func (u *UserStorage) GetUsersByRole(ctx context.Context, role domain.Role) []domain.User {
	return u.Find(ctx, func(user domain.User) bool { return user.Role == role })
}

// GetCurrentUser returns nil when nobody is signed in
func (u *UserStorage) GetCurrentUser(ctx context.Context) *domain.User {
	return Get[*domain.User](ctx, u.store, KeyCurrentUser, nil)
}

func (u *UserStorage) SetCurrentUser(ctx context.Context, user domain.User) {
	Set(ctx, u.store, KeyCurrentUser, user)
}

func (u *UserStorage) ClearCurrentUser(ctx context.Context) {
	u.store.Remove(ctx, KeyCurrentUser)
}
