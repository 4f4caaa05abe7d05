package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/requestdata"
	"github.com/yungbote/smartlocker-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListMine returns the authenticated user's notifications, optionally only
// the unread ones.
func (nh *NotificationHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	userID := requestdata.CurrentUserID(ctx)
	if userID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var err error
	var notifications any
	if c.Query("unread") == "true" {
		notifications, err = nh.notificationService.ListUnreadByUser(ctx, userID)
	} else {
		notifications, err = nh.notificationService.ListByUser(ctx, userID)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notifications)
}

func (nh *NotificationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	notification, err := nh.notificationService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notification)
}

func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	notification, err := nh.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notification)
}

func (nh *NotificationHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := nh.notificationService.Remove(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
