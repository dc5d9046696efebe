package request_models

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
}
