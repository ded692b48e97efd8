// internal/models/user.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'broker'"`
	Company      *string    `json:"company" gorm:"size:255"`
	Phone        *string    `json:"phone" gorm:"size:20"`
	AvatarURL    *string    `json:"avatar" gorm:"size:500"`
	Bio          *string    `json:"bio"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Properties []Property           `json:"properties,omitempty" gorm:"foreignKey:OwnerID"`
	Jobs       []Job                `json:"jobs,omitempty" gorm:"foreignKey:PhotographerID"`
	Profile    *PhotographerProfile `json:"photographer_profile,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// SetName splits a display name into first and last name the way the
// signup form expects ("Jane Doe" -> "Jane", "Doe").
func (u *User) SetName(name string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return
	}
	u.FirstName = parts[0]
	if len(parts) > 1 {
		u.LastName = strings.Join(parts[1:], " ")
	}
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PhotographerProfile is the extended profile carried by photographer users.
type PhotographerProfile struct {
	BaseModel
	UserID         uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User           *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Bio            string     `json:"bio"`
	Specialties    StringList `json:"specialties" gorm:"type:jsonb"`
	Rating         float64    `json:"rating" gorm:"default:0"`
	CompletedJobs  int        `json:"completed_jobs" gorm:"default:0"`
	AvailableDates StringList `json:"available_dates" gorm:"type:jsonb"`
	TravelFee      float64    `json:"travel_fee" gorm:"default:0"`
}
