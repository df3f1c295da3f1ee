package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/dto/response"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Mine handles listing the authenticated user's notifications
func (h *NotificationHandler) Mine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.ListMine(c.Request.Context(), *userID, unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notifications retrieved successfully", notifications)
}

// MarkRead handles marking a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id, *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
