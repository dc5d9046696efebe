package request_models

type SubmitReportRequest struct {
	ReportedUserID string `json:"reportedUserId" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
	Details        string `json:"details" binding:"required"`
}
