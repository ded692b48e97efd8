// internal/models/customer.go
package models

// Customer is a billing contact. Customers do not log in and are
// independent of User accounts.
type Customer struct {
	BaseModel
	Name      string  `json:"name" gorm:"size:255;not null"`
	Email     string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone     string  `json:"phone" gorm:"size:20"`
	Company   *string `json:"company" gorm:"size:255"`
	AvatarURL *string `json:"avatar" gorm:"size:500"`
}
