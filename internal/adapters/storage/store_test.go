package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	*MemoryBackend
	err error
}

func (f *failingBackend) Set(context.Context, string, string) error { return f.err }

func (f *failingBackend) Get(context.Context, string) (string, bool, error) { return "", false, f.err }

type captured struct {
	op, key string
	err     error
}

func captureErrors(dst *[]captured) Option {
	return WithErrorHandler(func(op, key string, err error) {
		*dst = append(*dst, captured{op, key, err})
	})
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend())

	type payload struct {
		Name string    `json:"name"`
		At   time.Time `json:"at"`
	}
	at := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	Set(ctx, s, KeyTheme, payload{Name: "x", At: at})

	got := Get(ctx, s, KeyTheme, payload{})
	assert.Equal(t, "x", got.Name)
	assert.True(t, at.Equal(got.At))
}

func TestStore_MissingKeyReturnsDefault(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	assert.Equal(t, 7, Get(context.Background(), s, "procurehub_missing", 7))
}

func TestStore_DecodeFailureReportedAndDefaulted(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Set(ctx, KeyUsers, "{not json"))

	var errs []captured
	s := NewStore(b, captureErrors(&errs))

	users := Get(ctx, s, KeyUsers, []domain.User{})
	assert.Empty(t, users)
	require.Len(t, errs, 1)
	assert.Equal(t, "decode", errs[0].op)
	assert.Equal(t, KeyUsers, errs[0].key)
}

func TestStore_BackendFailuresNeverSurface(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	var errs []captured
	s := NewStore(&failingBackend{MemoryBackend: NewMemoryBackend(), err: boom}, captureErrors(&errs))

	Set(ctx, s, KeyTheme, ThemeDark)
	assert.Equal(t, ThemeLight, NewAppStorage(s).GetTheme(ctx))

	require.Len(t, errs, 2)
	assert.Equal(t, "set", errs[0].op)
	assert.ErrorIs(t, errs[0].err, boom)
	assert.Equal(t, "get", errs[1].op)
}

func TestStore_UnavailableDegradesSilently(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.False(t, s.Available())

	a := NewAdapters(s)
	assert.NotPanics(t, func() {
		a.Projects.AddProject(ctx, domain.Project{ID: "p1"})
		a.Notifications.AddNotification(ctx, domain.Notification{ID: "n1", UserID: "u1"})
		a.Users.SetCurrentUser(ctx, domain.User{ID: "u1"})
		a.App.SetTheme(ctx, ThemeDark)
		s.Remove(ctx, KeyProjects)
		s.Clear(ctx)
	})

	assert.Empty(t, a.Projects.GetProjects(ctx))
	assert.Empty(t, a.Notifications.GetNotificationsByUser(ctx, "u1"))
	assert.Nil(t, a.Users.GetCurrentUser(ctx))
	assert.Equal(t, ThemeLight, a.App.GetTheme(ctx))
	assert.True(t, a.App.GetSidebarOpen(ctx))
	assert.Equal(t, 0, a.Notifications.UnreadCount(ctx, "u1"))
}

func TestStore_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Set(ctx, "other_app_token", `"abc"`))
	s := NewStore(b)

	Set(ctx, s, KeyTheme, ThemeDark)
	Set(ctx, s, KeySeeded, true)
	s.Clear(ctx)

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other_app_token"}, keys)
}

func TestStore_RevivesDatesInDynamicValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Set(ctx, KeyProjects,
		`[{"id":"p1","createdAt":"2024-01-02T03:04:05.000Z","tags":["2024-02-03T00:00:00Z","soon"]}]`))
	s := NewStore(b)

	raw := Get[[]any](ctx, s, KeyProjects, nil)
	require.Len(t, raw, 1)
	p := raw[0].(map[string]any)

	created, ok := p["createdAt"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, created.Year())
	assert.Equal(t, "p1", p["id"])

	tags := p["tags"].([]any)
	assert.IsType(t, time.Time{}, tags[0])
	assert.Equal(t, "soon", tags[1])
}

func TestAppStorage_Defaults(t *testing.T) {
	ctx := context.Background()
	a := NewAppStorage(NewStore(NewMemoryBackend()))

	assert.Equal(t, ThemeLight, a.GetTheme(ctx))
	assert.True(t, a.GetSidebarOpen(ctx))

	a.SetTheme(ctx, ThemeDark)
	a.SetSidebarOpen(ctx, false)
	assert.Equal(t, ThemeDark, a.GetTheme(ctx))
	assert.False(t, a.GetSidebarOpen(ctx))
}
