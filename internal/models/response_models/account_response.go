package response_models

import "time"

type LoginResponse struct {
	Token string         `json:"token"`
	User  ProfileDetails `json:"user"`
}

type ProfileDetails struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	CompanyName string     `json:"companyName,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Suspended   bool       `json:"suspended,omitempty"`
	SuspendedAt *time.Time `json:"suspendedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
