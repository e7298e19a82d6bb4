package handlers

import (
	"net/http"
	"strconv"

	"clinicblocks/models"
	"clinicblocks/services/notification"
	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Feed notification.NotificationFeed
}

func NewNotificationHandler(feed notification.NotificationFeed) *NotificationHandler {
	return &NotificationHandler{Feed: feed}
}

// ListNotificationsHandler handles GET /api/admin/notifications?limit=.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	if h.Feed == nil {
		c.JSON(http.StatusOK, []models.Notification{})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid limit", c.Query("limit"))
		return
	}

	list, err := h.Feed.List(c.Request.Context(), notification.AdminRecipient, limit)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list notifications", "")
		return
	}
	c.JSON(http.StatusOK, list)
}
