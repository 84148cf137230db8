package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/constants"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/middleware"
	"github.com/yukikurage/task-approval-api/internal/services"
	"github.com/yukikurage/task-approval-api/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	log                 *logrus.Entry
}

func NewNotificationHandler(notificationService *services.NotificationService, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 logrus.NewEntry(log),
	}
}

// ListNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c, constants.DefaultNotificationSize)

	result, err := h.notificationService.List(identity.ID, params.Page, params.Limit)
	if err != nil {
		respondError(c, h.log, "handlers.NotificationHandler.ListNotifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": result.Notifications,
		"pagination":    result.Pagination,
	})
}

// ClearNotifications deletes all of the caller's notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if _, err := h.notificationService.ClearAll(identity.ID); err != nil {
		respondError(c, h.log, "handlers.NotificationHandler.ClearNotifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications cleared successfully"})
}
