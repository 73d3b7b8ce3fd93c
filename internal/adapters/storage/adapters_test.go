package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapters() *Adapters {
	return NewAdapters(NewStore(NewMemoryBackend()))
}

func TestProjectStorage_AddProjectIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	p := domain.Project{ID: "p1", Name: "Riverside", GCID: "gc1", Status: domain.ProjectDraft}

	a.Projects.AddProject(ctx, p)
	a.Projects.AddProject(ctx, p)
	require.Len(t, a.Projects.GetProjects(ctx), 1)

	p.Name = "Riverside II"
	a.Projects.AddProject(ctx, p)
	all := a.Projects.GetProjects(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "Riverside II", all[0].Name)
}

func TestProjectStorage_Queries(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	a.Projects.SetProjects(ctx, []domain.Project{
		{ID: "p1", GCID: "gc1", Status: domain.ProjectBidding},
		{ID: "p2", GCID: "gc2", Status: domain.ProjectBidding},
		{ID: "p3", GCID: "gc1", Status: domain.ProjectDraft},
	})

	assert.Len(t, a.Projects.GetProjectsByGC(ctx, "gc1"), 2)
	assert.Len(t, a.Projects.GetProjectsByStatus(ctx, domain.ProjectBidding), 2)

	p, ok := a.Projects.GetProjectByID(ctx, "p3")
	require.True(t, ok)
	assert.Equal(t, domain.ProjectDraft, p.Status)

	_, ok = a.Projects.GetProjectByID(ctx, "nope")
	assert.False(t, ok)
}

func TestUserStorage_EmailLookupIgnoresCase(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	a.Users.AddUser(ctx, domain.User{ID: "u1", Email: "Jane@Summit.com", Role: domain.RoleGC})
	a.Users.AddUser(ctx, domain.User{ID: "u2", Email: "bob@flow.com", Role: domain.RoleSubcontractor})

	u, ok := a.Users.GetUserByEmail(ctx, "jane@summit.COM")
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Len(t, a.Users.GetUsersByRole(ctx, domain.RoleSubcontractor), 1)
}

func TestUserStorage_CurrentUser(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	assert.Nil(t, a.Users.GetCurrentUser(ctx))

	a.Users.SetCurrentUser(ctx, domain.User{ID: "u1", Name: "Jane"})
	cur := a.Users.GetCurrentUser(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, "Jane", cur.Name)

	a.Users.ClearCurrentUser(ctx)
	assert.Nil(t, a.Users.GetCurrentUser(ctx))
}

func TestBidStorage_Queries(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	a.Bids.AddBid(ctx, domain.Bid{ID: "b1", ProjectID: "p1", SubcontractorID: "s1"})
	a.Bids.AddBid(ctx, domain.Bid{ID: "b2", ProjectID: "p1", SubcontractorID: "s2"})
	a.Bids.AddBid(ctx, domain.Bid{ID: "b3", ProjectID: "p2", SubcontractorID: "s1"})

	assert.Len(t, a.Bids.GetBidsByProject(ctx, "p1"), 2)
	assert.Len(t, a.Bids.GetBidsBySubcontractor(ctx, "s1"), 2)
	assert.True(t, a.Bids.Remove(ctx, "b2"))
	assert.False(t, a.Bids.Remove(ctx, "b2"))
	assert.Len(t, a.Bids.GetBids(ctx), 2)
}

func TestNotificationStorage_CapKeepsNewestHundred(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a.Notifications.AddNotification(ctx, domain.Notification{ID: "other", UserID: "u2", CreatedAt: base})
	for i := 0; i < 150; i++ {
		a.Notifications.AddNotification(ctx, domain.Notification{
			ID:        fmt.Sprintf("n%03d", i),
			UserID:    "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	mine := a.Notifications.GetNotificationsByUser(ctx, "u1")
	require.Len(t, mine, MaxNotificationsPerUser)
	assert.Equal(t, "n149", mine[0].ID)
	assert.Equal(t, "n050", mine[len(mine)-1].ID)
	for i := 1; i < len(mine); i++ {
		assert.True(t, mine[i-1].CreatedAt.After(mine[i].CreatedAt))
	}

	assert.Len(t, a.Notifications.GetNotificationsByUser(ctx, "u2"), 1)
}

func TestNotificationStorage_ReadState(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()
	a.Notifications.SetNotifications(ctx, []domain.Notification{
		{ID: "n1", UserID: "u1"},
		{ID: "n2", UserID: "u1"},
		{ID: "n3", UserID: "u2"},
	})

	assert.Equal(t, 2, a.Notifications.UnreadCount(ctx, "u1"))
	assert.True(t, a.Notifications.MarkAsRead(ctx, "n1"))
	assert.False(t, a.Notifications.MarkAsRead(ctx, "missing"))
	assert.Equal(t, 1, a.Notifications.UnreadCount(ctx, "u1"))

	assert.Equal(t, 1, a.Notifications.MarkAllAsRead(ctx, "u1"))
	assert.Equal(t, 0, a.Notifications.UnreadCount(ctx, "u1"))
	assert.Equal(t, 1, a.Notifications.UnreadCount(ctx, "u2"))

	assert.True(t, a.Notifications.RemoveNotification(ctx, "n3"))
	assert.Len(t, a.Notifications.GetNotifications(ctx), 2)
}

func TestCollection_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	a := newAdapters()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a.Loans.Upsert(ctx, domain.Loan{ID: fmt.Sprintf("l%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, a.Loans.All(ctx), 50)
}
