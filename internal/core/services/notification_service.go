package services

import (
	"context"
	"log"
	"strings"
	"time"

	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/domain"
	"procurehub/internal/metrics"
)

// ReadRetention is how long read notifications survive the retention sweep
const ReadRetention = 90 * 24 * time.Hour

// NotificationService handles in-app notifications
type NotificationService struct {
	repos *Repositories
	env   Env
}

// NewNotificationService creates a new notification service
func NewNotificationService(repos *Repositories, env Env) *NotificationService {
	return &NotificationService{repos: repos, env: env}
}

// NotificationFilter narrows GetNotifications
type NotificationFilter struct {
	UserID string
	Unread bool
	Types  []domain.NotificationType
	Limit  int
}

// NotifyInput describes a notification to deliver
type NotifyInput struct {
	UserID    string                      `json:"userId"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Type      domain.NotificationType     `json:"type"`
	Priority  domain.Priority             `json:"priority"`
	Category  domain.NotificationCategory `json:"category"`
	ActionURL string                      `json:"actionUrl"`
}

// GetNotifications lists notifications newest first
func (s *NotificationService) GetNotifications(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error) {
	if err := s.env.begin(ctx, "GetNotifications"); err != nil {
		return nil, err
	}
	items, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool {
		if filter.UserID != "" && n.UserID != filter.UserID {
			return false
		}
		if filter.Unread && n.Read {
			return false
		}
		return containsStatus(filter.Types, n.Type)
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(items, notificationTime, filter.Limit), nil
}

// Notify delivers a notification to one user
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error) {
	if err := s.env.begin(ctx, "Notify"); err != nil {
		return nil, err
	}
	if _, err := s.repos.Users.Get(ctx, input.UserID); err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.UserID)
	}
	return s.send(ctx, input)
}

// send stores the notification and applies the per-user cap. Other services
// call it directly so they do not pay the simulated latency twice.
func (s *NotificationService) send(ctx context.Context, input NotifyInput) (*domain.Notification, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.Validationf("title is required")
	}
	if input.Type == "" {
		input.Type = domain.NotificationInfo
	}
	if !input.Type.Valid() {
		return nil, domain.Validationf("invalid notification type %q", input.Type)
	}

	n, err := s.repos.Notifications.Create(ctx, domain.Notification{
		ID:        s.env.newID(),
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Priority:  input.Priority,
		Category:  input.Category,
		ActionURL: input.ActionURL,
		CreatedAt: s.env.now(),
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.capUser(ctx, input.UserID); err != nil {
		return nil, err
	}
	return &n, nil
}

// notifyQuietly is used for side-effect notifications that must not fail the caller
func (s *NotificationService) notifyQuietly(ctx context.Context, input NotifyInput) {
	if _, err := s.send(ctx, input); err != nil {
		log.Printf("⚠️ Failed to notify user %s: %v", input.UserID, err)
	}
}

// capUser drops the user's oldest notifications beyond the per-user maximum
func (s *NotificationService) capUser(ctx context.Context, userID string) (int, error) {
	mine, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool { return n.UserID == userID })
	if err != nil {
		return 0, err
	}
	if len(mine) <= storage.MaxNotificationsPerUser {
		return 0, nil
	}
	mine = newestFirst(mine, notificationTime, 0)
	evicted := 0
	for _, n := range mine[storage.MaxNotificationsPerUser:] {
		if err := s.repos.Notifications.Delete(ctx, n.ID); err != nil {
			return evicted, err
		}
		evicted++
	}
	metrics.NotificationsEvicted.Add(float64(evicted))
	return evicted, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	if err := s.env.begin(ctx, "MarkRead"); err != nil {
		return nil, err
	}
	n, err := s.repos.Notifications.Update(ctx, id, func(n *domain.Notification) error {
		if n.UserID != userID {
			return domain.NotFound(domain.ErrNotificationNotFound, id)
		}
		n.Read = true
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrNotificationNotFound, id)
	}
	return &n, nil
}

// MarkAllRead marks every unread notification of the user and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	if err := s.env.begin(ctx, "MarkAllRead"); err != nil {
		return 0, err
	}
	unread, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	if err != nil {
		return 0, err
	}
	for _, n := range unread {
		if _, err := s.repos.Notifications.Update(ctx, n.ID, func(n *domain.Notification) error {
			n.Read = true
			return nil
		}); err != nil {
			return 0, err
		}
	}
	return len(unread), nil
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.env.begin(ctx, "DeleteNotification"); err != nil {
		return err
	}
	n, err := s.repos.Notifications.Get(ctx, id)
	if err != nil || n.UserID != userID {
		return domain.NotFound(domain.ErrNotificationNotFound, id)
	}
	return s.repos.Notifications.Delete(ctx, id)
}

// UnreadCount counts the user's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	if err := s.env.begin(ctx, "UnreadCount"); err != nil {
		return 0, err
	}
	return s.unreadCount(ctx, userID)
}

func (s *NotificationService) unreadCount(ctx context.Context, userID string) (int, error) {
	unread, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	return len(unread), err
}

// EnforceRetention removes read notifications older than ReadRetention and
// re-applies the per-user cap. It returns how many notifications were removed.
func (s *NotificationService) EnforceRetention(ctx context.Context) (int, error) {
	cutoff := s.env.now().Add(-ReadRetention)
	expired, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool {
		return n.Read && n.CreatedAt.Before(cutoff)
	})
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, n := range expired {
		if err := s.repos.Notifications.Delete(ctx, n.ID); err != nil {
			return removed, err
		}
		removed++
	}

	all, err := s.repos.Notifications.List(ctx, nil)
	if err != nil {
		return removed, err
	}
	users := map[string]bool{}
	for _, n := range all {
		users[n.UserID] = true
	}
	for userID := range users {
		n, err := s.capUser(ctx, userID)
		removed += n
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func notificationTime(n domain.Notification) time.Time { return n.CreatedAt }
