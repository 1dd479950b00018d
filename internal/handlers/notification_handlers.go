package handlers

import (
	"errors"
	"net/http"

	"cleanstride_backend/internal/services"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	callerID, _ := callerIdentity(c)

	notifications, err := h.notificationService.GetNotifications(callerID)
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.GetNotifications")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch notifications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.Param("id")
	callerID, _ := callerIdentity(c)

	if err := h.notificationService.MarkRead(notificationID, callerID); err != nil {
		utils.LogError(err, "MarkRead: Error from notificationService.MarkRead for ID "+notificationID)
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Notification not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notification read.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks all of the caller's notifications as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	callerID, _ := callerIdentity(c)

	if err := h.notificationService.MarkAllRead(callerID); err != nil {
		utils.LogError(err, "MarkAllRead: Error from notificationService.MarkAllRead")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notifications read.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
