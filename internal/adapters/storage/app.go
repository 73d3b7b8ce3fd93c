package storage

import "context"

// Theme of the client UI
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

// AppStorage persists client preferences
type AppStorage struct {
	store *Store
}

func NewAppStorage(s *Store) *AppStorage {
	return &AppStorage{store: s}
}

func (a *AppStorage) GetTheme(ctx context.Context) Theme {
	t := Get(ctx, a.store, KeyTheme, ThemeLight)
	if !t.Valid() {
		return ThemeLight
	}
	return t
}

func (a *AppStorage) SetTheme(ctx context.Context, t Theme) {
	Set(ctx, a.store, KeyTheme, t)
}

func (a *AppStorage) GetSidebarOpen(ctx context.Context) bool {
	return Get(ctx, a.store, KeySidebarOpen, true)
}

func (a *AppStorage) SetSidebarOpen(ctx context.Context, open bool) {
	Set(ctx, a.store, KeySidebarOpen, open)
}
