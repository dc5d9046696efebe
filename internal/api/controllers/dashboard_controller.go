package controllers

import (
	"net/http"

	"fablink/internal/services"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	accountService   services.AccountServiceInterface
}

func NewDashboardController(
	dashboardService services.DashboardServiceInterface,
	accountService services.AccountServiceInterface,
) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		accountService:   accountService,
	}
}

// GetReport godoc
// @Summary Dashboard aggregation for the caller's feedback
// @Description Counts by status and type, six month trend, top products
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (d *DashboardController) GetReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := d.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	report, err := d.dashboardService.BuildReport(c.Request.Context(), user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}

// ExportCSV godoc
// @Summary Download the caller's feedback as CSV
// @Tags Dashboard
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /dashboard/export [get]
func (d *DashboardController) ExportCSV(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := d.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	name, content, err := d.dashboardService.ExportCSV(c.Request.Context(), user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", content)
}
