// internal/models/assignment.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyService binds one catalog Service (plus optional addons) to one
// Property, with its own scheduling lifecycle independent of the parent
// Property. A photographer must be attached before it can be scheduled.
type PropertyService struct {
	BaseModel
	PropertyID     uuid.UUID        `json:"property_id" gorm:"type:uuid;not null;index"`
	Property       *Property        `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	ServiceID      uuid.UUID        `json:"service_id" gorm:"type:uuid;not null"`
	Service        *Service         `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	PhotographerID *uuid.UUID       `json:"photographer_id" gorm:"type:uuid;index"`
	Photographer   *User            `json:"photographer,omitempty" gorm:"foreignKey:PhotographerID"`
	ScheduledDate  *time.Time       `json:"scheduled_date" gorm:"type:date"`
	ScheduledTime  *string          `json:"scheduled_time" gorm:"size:20"`
	Status         AssignmentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Notes          *string          `json:"notes"`
	AddonIDs       UUIDList         `json:"addon_ids" gorm:"type:jsonb"`
	JobID          *uuid.UUID       `json:"job_id" gorm:"type:uuid"`
}
