package controllers

import (
	"net/http"

	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/services"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reportService  services.ReportServiceInterface
	accountService services.AccountServiceInterface
}

func NewReportController(
	reportService services.ReportServiceInterface,
	accountService services.AccountServiceInterface,
) *ReportController {
	return &ReportController{
		reportService:  reportService,
		accountService: accountService,
	}
}

// SubmitReport godoc
// @Summary Report a user
// @Description Reason must come from the fixed report reason set
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body request_models.SubmitReportRequest true "Report payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports [post]
func (r *ReportController) SubmitReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reporter, err := r.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	id, err := r.reportService.SubmitReport(c.Request.Context(), reporter, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Report submitted successfully")
}

// ListReports godoc
// @Summary List reports
// @Description Optional status filter: pending, resolved or dismissed
// @Tags Reports
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports [get]
func (r *ReportController) ListReports(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", "all":
		status = ""
	case string(db_models.ReportPending), string(db_models.ReportResolved), string(db_models.ReportDismissed):
	default:
		utils.RespondError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	reports, err := r.reportService.List(c.Request.Context(), db_models.ReportStatus(status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reports, "Reports fetched successfully")
}

// ResolveReport godoc
// @Summary Resolve a pending report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports/{id}/resolve [post]
func (r *ReportController) ResolveReport(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Resolution string `json:"resolution"`
	}
	// Resolution text is optional.
	_ = c.ShouldBindJSON(&body)

	if err := r.reportService.Resolve(c.Request.Context(), id, body.Resolution); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Report resolved successfully")
}

// DismissReport godoc
// @Summary Dismiss a pending report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports/{id}/dismiss [post]
func (r *ReportController) DismissReport(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := r.reportService.Dismiss(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Report dismissed successfully")
}

// SuspendUser godoc
// @Summary Suspend the reported user
// @Description Suspends the account and resolves the report in one step
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports/{id}/suspend [post]
func (r *ReportController) SuspendUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := r.reportService.SuspendUser(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User suspended and report resolved")
}
