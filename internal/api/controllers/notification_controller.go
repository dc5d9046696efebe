package controllers

import (
	"net/http"
	"strconv"

	"fablink/internal/services"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultNotificationLimit = 50

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Param limit query int false "Max notifications" default(50)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications [get]
func (n *NotificationController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultNotificationLimit)))
	if err != nil || limit < 1 || limit > 200 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	notifications, err := n.notificationService.List(c.Request.Context(), userID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, notifications, "Notifications fetched successfully")
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (n *NotificationController) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := n.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification marked read")
}

// MarkAllRead godoc
// @Summary Mark all of the caller's notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (n *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := n.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notifications marked read")
}
