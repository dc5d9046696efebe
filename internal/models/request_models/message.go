package request_models

type AddMessageRequest struct {
	FeedbackID string `form:"feedbackId" json:"feedbackId" binding:"required"`
	Content    string `form:"content" json:"content" binding:"required"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=sent delivered read"`
}
