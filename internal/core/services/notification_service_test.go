package services

import (
	"fmt"
	"testing"
	"time"

	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_CapPerUser(t *testing.T) {
	f := newFixture(t)

	total := storage.MaxNotificationsPerUser + 5
	for i := 0; i < total; i++ {
		f.clock.Advance(time.Minute)
		_, err := f.svc.Notifications.Notify(f.ctx, NotifyInput{
			UserID: "sub-2",
			Title:  fmt.Sprintf("n-%d", i),
		})
		require.NoError(t, err)
	}

	items := f.notificationsFor(t, "sub-2")
	require.Len(t, items, storage.MaxNotificationsPerUser)
	assert.Equal(t, fmt.Sprintf("n-%d", total-1), items[0].Title)
	assert.Equal(t, fmt.Sprintf("n-%d", total-storage.MaxNotificationsPerUser), items[len(items)-1].Title)

	// other users keep theirs
	assert.Len(t, f.notificationsFor(t, "gc-1"), 2)
}

func TestNotificationService_CapPerUserFrozenClock(t *testing.T) {
	f := newFixture(t)

	total := storage.MaxNotificationsPerUser + 50
	var last *domain.Notification
	for i := 0; i < total; i++ {
		n, err := f.svc.Notifications.Notify(f.ctx, NotifyInput{
			UserID: "sub-2",
			Title:  fmt.Sprintf("n-%d", i),
		})
		require.NoError(t, err)
		last = n
	}

	items := f.notificationsFor(t, "sub-2")
	require.Len(t, items, storage.MaxNotificationsPerUser)
	assert.Equal(t, last.ID, items[0].ID)
	assert.Equal(t, fmt.Sprintf("n-%d", total-1), items[0].Title)
	assert.Equal(t, fmt.Sprintf("n-%d", total-storage.MaxNotificationsPerUser), items[len(items)-1].Title)

	titles := make(map[string]bool, len(items))
	for _, n := range items {
		titles[n.Title] = true
	}
	assert.False(t, titles["n-0"])
	assert.False(t, titles["n-49"])
	assert.True(t, titles["n-50"])
}

func TestNotificationService_Notify(t *testing.T) {
	f := newFixture(t)

	n, err := f.svc.Notifications.Notify(f.ctx, NotifyInput{UserID: "gc-1", Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationInfo, n.Type)
	assert.False(t, n.Read)

	_, err = f.svc.Notifications.Notify(f.ctx, NotifyInput{UserID: "gc-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Notifications.Notify(f.ctx, NotifyInput{UserID: "gc-1", Title: "x", Type: "loud"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Notifications.Notify(f.ctx, NotifyInput{UserID: "ghost", Title: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNotificationService_ReadState(t *testing.T) {
	f := newFixture(t)

	count, err := f.svc.Notifications.UnreadCount(f.ctx, "gc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.svc.Notifications.MarkRead(f.ctx, "gc-2", "notif-1")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	n, err := f.svc.Notifications.MarkRead(f.ctx, "gc-1", "notif-1")
	require.NoError(t, err)
	assert.True(t, n.Read)

	count, err = f.svc.Notifications.UnreadCount(f.ctx, "gc-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	changed, err := f.svc.Notifications.MarkAllRead(f.ctx, "gc-1")
	require.NoError(t, err)
	assert.Zero(t, changed)

	unread, err := f.svc.Notifications.GetNotifications(f.ctx, NotificationFilter{UserID: "bank-1", Unread: true})
	require.NoError(t, err)
	assert.Len(t, unread, 1)
	changed, err = f.svc.Notifications.MarkAllRead(f.ctx, "bank-1")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
}

func TestNotificationService_Delete(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Notifications.Delete(f.ctx, "gc-2", "notif-1")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)

	require.NoError(t, f.svc.Notifications.Delete(f.ctx, "gc-1", "notif-1"))
	assert.Len(t, f.notificationsFor(t, "gc-1"), 1)
}

func TestNotificationService_EnforceRetention(t *testing.T) {
	f := newFixture(t)

	old := f.clock.Now().Add(-ReadRetention - time.Hour)
	_, err := f.repos.Notifications.Create(f.ctx, domain.Notification{ID: "old-read", UserID: "gc-1", Title: "old", Type: domain.NotificationInfo, Read: true, CreatedAt: old})
	require.NoError(t, err)
	_, err = f.repos.Notifications.Create(f.ctx, domain.Notification{ID: "old-unread", UserID: "gc-1", Title: "old", Type: domain.NotificationInfo, CreatedAt: old})
	require.NoError(t, err)

	removed, err := f.svc.Notifications.EnforceRetention(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = f.repos.Notifications.Get(f.ctx, "old-read")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.repos.Notifications.Get(f.ctx, "old-unread")
	assert.NoError(t, err)
}
