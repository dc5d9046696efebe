package controllers

import (
	"mime/multipart"
	"net/http"

	"fablink/internal/blobstore"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/services"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
	accountService  services.AccountServiceInterface
}

func NewFeedbackController(
	feedbackService services.FeedbackServiceInterface,
	accountService services.AccountServiceInterface,
) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		accountService:  accountService,
	}
}

// CreateFeedback godoc
// @Summary Open a feedback thread
// @Description Create feedback for a manufacturer, optionally with attachments
// @Tags Feedback
// @Accept mpfd
// @Produce json
// @Param manufacturerId formData string true "Manufacturer ID"
// @Param message formData string true "Feedback message"
// @Param feedbackType formData string true "suggestion | complaint | praise"
// @Param product formData string false "Product name"
// @Param attachments formData file false "Attachments"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /feedback [post]
func (f *FeedbackController) CreateFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateFeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	consumer, err := f.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	files, closeFiles, ok := formUploads(c)
	if !ok {
		return
	}
	defer closeFiles()

	id, err := f.feedbackService.CreateFeedback(c.Request.Context(), consumer, req, files)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Feedback created successfully")
}

// GetFeedback godoc
// @Summary Get one feedback thread
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /feedback/{id} [get]
func (f *FeedbackController) GetFeedback(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	feedback, err := f.feedbackService.GetFeedbackByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if feedback == nil {
		utils.RespondError(c, http.StatusNotFound, "Feedback not found")
		return
	}

	utils.RespondSuccess(c, feedback, "Feedback fetched successfully")
}

// ListMine godoc
// @Summary List the caller's feedback
// @Description Consumers see feedback they sent, manufacturers feedback they received
// @Tags Feedback
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /feedback [get]
func (f *FeedbackController) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		items interface{}
		err   error
	)
	if c.GetString("role") == db_models.RoleManufacturer {
		items, err = f.feedbackService.GetManufacturerFeedback(c.Request.Context(), userID)
	} else {
		items, err = f.feedbackService.GetConsumerFeedback(c.Request.Context(), userID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Feedback fetched successfully")
}

// UpdateStatus godoc
// @Summary Update a feedback thread's status
// @Description Transitions are forward only; acknowledged may be skipped
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param request body request_models.UpdateFeedbackStatusRequest true "Status payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /feedback/{id}/status [patch]
func (f *FeedbackController) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := f.feedbackService.UpdateStatus(c.Request.Context(), id, db_models.FeedbackStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Status updated successfully")
}

// formUploads collects the "attachments" files from a multipart form. The
// returned closer must run after the service has consumed the readers.
func formUploads(c *gin.Context) ([]blobstore.Upload, func(), bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all is fine; attachments are optional.
		return nil, func() {}, true
	}

	headers := form.File["attachments"]
	uploads := make([]blobstore.Upload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, h := range headers {
		file, err := h.Open()
		if err != nil {
			closeAll()
			utils.RespondError(c, http.StatusBadRequest, "Unreadable attachment")
			return nil, nil, false
		}
		opened = append(opened, file)
		uploads = append(uploads, blobstore.Upload{
			Name:        h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	return uploads, closeAll, true
}
