package storage

import (
	"context"

	"procurehub/internal/core/domain"
	"procurehub/internal/metrics"
)

// MaxNotificationsPerUser bounds how many notifications are kept for one user
const MaxNotificationsPerUser = 100

// NotificationStorage persists notifications newest-first
type NotificationStorage struct {
	*Collection[domain.Notification]
}

func NewNotificationStorage(s *Store) *NotificationStorage {
	return &NotificationStorage{Collection: NewCollection[domain.Notification](s, KeyNotifications)}
}

func (n *NotificationStorage) GetNotifications(ctx context.Context) []domain.Notification {
	return n.All(ctx)
}

func (n *NotificationStorage) SetNotifications(ctx context.Context, items []domain.Notification) {
	n.Replace(ctx, items)
}

// AddNotification prepends the notification, then drops that user's oldest
// entries beyond MaxNotificationsPerUser.
func (n *NotificationStorage) AddNotification(ctx context.Context, notification domain.Notification) {
	_ = n.Mutate(ctx, func(items []domain.Notification) ([]domain.Notification, error) {
		out := make([]domain.Notification, 0, len(items)+1)
		out = append(out, notification)
		for _, it := range items {
			if it.ID != notification.ID {
				out = append(out, it)
			}
		}
		return CapPerUser(out, MaxNotificationsPerUser), nil
	})
}

// CapPerUser keeps the first max entries of each user in list order
func CapPerUser(items []domain.Notification, max int) []domain.Notification {
	seen := make(map[string]int)
	out := items[:0]
	evicted := 0
	for _, it := range items {
		seen[it.UserID]++
		if seen[it.UserID] > max {
			evicted++
			continue
		}
		out = append(out, it)
	}
	if evicted > 0 {
		metrics.NotificationsEvicted.Add(float64(evicted))
	}
	return out
}

func (n *NotificationStorage) GetNotificationsByUser(ctx context.Context, userID string) []domain.Notification {
	return n.Find(ctx, func(it domain.Notification) bool { return it.UserID == userID })
}

// MarkAsRead reports whether the notification exists
func (n *NotificationStorage) MarkAsRead(ctx context.Context, id string) bool {
	found := false
	_ = n.Mutate(ctx, func(items []domain.Notification) ([]domain.Notification, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = true
				found = true
			}
		}
		return items, nil
	})
	return found
}

// MarkAllAsRead returns how many notifications changed
func (n *NotificationStorage) MarkAllAsRead(ctx context.Context, userID string) int {
	changed := 0
	_ = n.Mutate(ctx, func(items []domain.Notification) ([]domain.Notification, error) {
		for i := range items {
			if items[i].UserID == userID && !items[i].Read {
				items[i].Read = true
				changed++
			}
		}
		return items, nil
	})
	return changed
}

func (n *NotificationStorage) RemoveNotification(ctx context.Context, id string) bool {
	return n.Remove(ctx, id)
}

func (n *NotificationStorage) UnreadCount(ctx context.Context, userID string) int {
	count := 0
	for _, it := range n.All(ctx) {
		if it.UserID == userID && !it.Read {
			count++
		}
	}
	return count
}
