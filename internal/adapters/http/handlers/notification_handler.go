package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles the caller's notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications lists the caller's notifications newest first
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Param type query string false "Comma separated types"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	items, err := h.notificationService.GetNotifications(c.Context(), services.NotificationFilter{
		UserID: userID,
		Unread: c.QueryBool("unread"),
		Types:  statusesOf[domain.NotificationType](c.Query("type")),
	})
	if err != nil {
		return handleError(c, err, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", pagination.Paginate(items, pagination.GetParams(c)))
}

// UnreadCount returns the caller's unread count
// @Summary Unread notification count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return handleError(c, err, "Failed to count notifications")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{"count": count})
}

// MarkRead marks one notification read
// @Summary Mark notification read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	n, err := h.notificationService.MarkRead(c.Context(), userID, c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to mark notification read")
	}

	return response.Success(c, "Notification marked as read", n)
}

// MarkAllRead marks every notification of the caller read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	changed, err := h.notificationService.MarkAllRead(c.Context(), userID)
	if err != nil {
		return handleError(c, err, "Failed to mark notifications read")
	}

	return response.Success(c, "Notifications marked as read", fiber.Map{"updated": changed})
}

// DeleteNotification removes one notification
// @Summary Delete notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notificationService.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete notification")
	}

	return response.Success(c, "Notification deleted", nil)
}
