package request_models

// CreateFeedbackRequest is the non-file part of the multipart feedback form.
type CreateFeedbackRequest struct {
	ManufacturerID string `form:"manufacturerId" json:"manufacturerId" binding:"required"`
	Message        string `form:"message" json:"message" binding:"required"`
	FeedbackType   string `form:"feedbackType" json:"feedbackType" binding:"required,oneof=suggestion complaint praise"`
	Product        string `form:"product" json:"product"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending acknowledged responded"`
}
