package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"procurehub/internal/config"
	"procurehub/internal/core/domain"
	"procurehub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

// testClock is a manually advanced clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	ctx   context.Context
	cfg   *config.Config
	repos *Repositories
	svc   *Services
	clock *testClock
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "test",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
		Mock:    config.MockConfig{AcceptAnyPassword: true},
	}
}

// newFixture loads the static demo data into memory repositories
func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	var seq int
	var seqMu sync.Mutex
	env := Env{
		Now: clock.Now,
		NewID: func() string {
			seqMu.Lock()
			defer seqMu.Unlock()
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	}

	ctx := context.Background()
	repos := NewMemoryRepositories()
	ds := config.StaticDataset(clock.Now())
	for _, u := range ds.Users {
		_, err := repos.Users.Create(ctx, u)
		require.NoError(t, err)
	}
	for _, p := range ds.Projects {
		_, err := repos.Projects.Create(ctx, p)
		require.NoError(t, err)
	}
	for _, b := range ds.Bids {
		_, err := repos.Bids.Create(ctx, b)
		require.NoError(t, err)
	}
	for _, n := range ds.Notifications {
		_, err := repos.Notifications.Create(ctx, n)
		require.NoError(t, err)
	}
	for _, l := range ds.Loans {
		_, err := repos.Loans.Create(ctx, l)
		require.NoError(t, err)
	}
	for _, o := range ds.Orders {
		_, err := repos.Orders.Create(ctx, o)
		require.NoError(t, err)
	}
	for _, p := range ds.Payments {
		_, err := repos.Payments.Create(ctx, p)
		require.NoError(t, err)
	}
	for _, i := range ds.Inventory {
		_, err := repos.Inventory.Create(ctx, i)
		require.NoError(t, err)
	}

	cfg := testConfig()
	return &fixture{
		ctx:   ctx,
		cfg:   cfg,
		repos: repos,
		svc:   New(repos, cfg, env),
		clock: clock,
	}
}

// notificationsFor returns the user's notifications newest first
func (f *fixture) notificationsFor(t *testing.T, userID string) []domain.Notification {
	t.Helper()
	items, err := f.svc.Notifications.GetNotifications(f.ctx, NotificationFilter{UserID: userID})
	require.NoError(t, err)
	return items
}
