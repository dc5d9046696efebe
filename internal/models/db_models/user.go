package db_models

import "time"

const (
	RoleConsumer     = "consumer"
	RoleManufacturer = "manufacturer"
)

// User is the profile/role directory record. Role is fixed at registration.
// Consumers leave CompanyName and Industry empty; manufacturers fill them in.
type User struct {
	BaseModel
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`

	CompanyName string
	Industry    string
	Phone       string
	Bio         string

	Suspended       bool `gorm:"default:false"`
	SuspendedAt     *time.Time
	SuspendedReason string
}

func (u *User) IsManufacturer() bool {
	return u.Role == RoleManufacturer
}
