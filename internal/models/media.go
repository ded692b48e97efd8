// internal/models/media.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Media records one uploaded file for a property. Blobs live in the media
// store; only the storage key is persisted here and URLs are resolved from
// it when records are read.
type Media struct {
	BaseModel
	PropertyID   uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	Property     *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	ServiceID    uuid.UUID `json:"service_id" gorm:"type:uuid;not null"`
	Service      *Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Type         MediaType `json:"type" gorm:"type:varchar(20);not null"`
	FileKey      string    `json:"-" gorm:"size:500;not null"`
	ThumbnailKey *string   `json:"-" gorm:"size:500"`
	FileName     string    `json:"file_name" gorm:"size:255;not null"`
	FileSize     int64     `json:"file_size" gorm:"not null"`
	UploadedAt   time.Time `json:"uploaded_at"`

	// Resolved from FileKey/ThumbnailKey by the media service, not persisted.
	URL          string  `json:"url" gorm:"-"`
	ThumbnailURL *string `json:"thumbnail_url" gorm:"-"`
}
