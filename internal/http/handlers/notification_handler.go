package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// NotificationHandler — лента уведомлений.
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List — GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	limit, offset := common.GetPagination(c)
	notifications, err := h.notifications.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, notifications)
}

// UnreadCount — GET /api/notifications/unread
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	count, err := h.notifications.CountUnread(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.UnreadCountResponse{Unread: count})
}

// MarkRead — POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		common.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead — POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	if _, err := h.notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		common.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
