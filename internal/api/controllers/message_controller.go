package controllers

import (
	"net/http"

	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/services"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	messageService services.MessageServiceInterface
	accountService services.AccountServiceInterface
}

func NewMessageController(
	messageService services.MessageServiceInterface,
	accountService services.AccountServiceInterface,
) *MessageController {
	return &MessageController{
		messageService: messageService,
		accountService: accountService,
	}
}

// AddMessage godoc
// @Summary Add a message to a feedback thread
// @Description A manufacturer reply moves the thread to responded
// @Tags Messages
// @Accept mpfd
// @Produce json
// @Param feedbackId formData string true "Feedback ID"
// @Param content formData string true "Message content"
// @Param attachments formData file false "Attachments"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /messages [post]
func (m *MessageController) AddMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.AddMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	sender, err := m.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	files, closeFiles, ok := formUploads(c)
	if !ok {
		return
	}
	defer closeFiles()

	id, err := m.messageService.AddMessage(c.Request.Context(), sender, req, files)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Message added successfully")
}

// GetThread godoc
// @Summary Get a thread's messages grouped by date
// @Description Viewing marks the other party's messages read
// @Tags Messages
// @Produce json
// @Param feedbackId path string true "Feedback ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /messages/thread/{feedbackId} [get]
func (m *MessageController) GetThread(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	feedbackID, ok := pathUUID(c, "feedbackId")
	if !ok {
		return
	}

	messages, err := m.messageService.GetThread(c.Request.Context(), userID, feedbackID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	groups := m.messageService.GroupByDate(messages)
	utils.RespondSuccess(c, groups, "Messages fetched successfully")
}

// UpdateStatus godoc
// @Summary Update a message's delivery status
// @Description Status only moves forward: sent, delivered, read
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body request_models.UpdateMessageStatusRequest true "Status payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /messages/{id}/status [patch]
func (m *MessageController) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := m.messageService.UpdateStatus(c.Request.Context(), id, db_models.MessageStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Status updated successfully")
}
