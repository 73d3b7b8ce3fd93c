package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"procurehub/internal/config"
	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatency_Wait(t *testing.T) {
	require.NoError(t, Latency{}.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, Latency{Delay: 10 * time.Millisecond}.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Latency{Delay: time.Hour}.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServices_HonorCancellation(t *testing.T) {
	repos := NewMemoryRepositories()
	svc := New(repos, testConfig(), NewEnv(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := svc.Projects.GetProjects(ctx, ProjectFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.Bid{
		{ID: "a", SubmittedAt: base},
		{ID: "b", SubmittedAt: base.Add(2 * time.Hour)},
		{ID: "c", SubmittedAt: base.Add(time.Hour)},
	}
	got := newestFirst(items, bidTime, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestNewestFirst_TiesPreferLaterInserted(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.Bid{
		{ID: "first", SubmittedAt: at},
		{ID: "older", SubmittedAt: at.Add(-time.Hour)},
		{ID: "second", SubmittedAt: at},
		{ID: "third", SubmittedAt: at},
	}
	got := newestFirst(items, bidTime, 0)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"third", "second", "first", "older"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
}

type stubExporter struct {
	data []byte
	err  error
}

func (s stubExporter) Export(context.Context) ([]byte, error) { return s.data, s.err }

func TestCronService_Snapshot(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "snapshots", "latest.json")

	cron := NewCronService(config.CronConfig{SnapshotPath: path}, f.svc.Notifications, stubExporter{data: []byte(`{"version":1}`)})
	require.NoError(t, cron.writeSnapshot(f.ctx))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(got))

	failing := NewCronService(config.CronConfig{SnapshotPath: path}, f.svc.Notifications, stubExporter{err: errors.New("boom")})
	assert.Error(t, failing.writeSnapshot(f.ctx))
}

func TestCronService_Start(t *testing.T) {
	f := newFixture(t)

	bad := NewCronService(config.CronConfig{Retention: "not a schedule"}, f.svc.Notifications, nil)
	assert.Error(t, bad.Start())

	ok := NewCronService(config.CronConfig{Retention: "@every 1h", Snapshot: "@daily"}, f.svc.Notifications, nil)
	require.NoError(t, ok.Start())
	ok.Stop()
}
