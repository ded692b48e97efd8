// internal/models/catalog.go
package models

import "github.com/google/uuid"

// Service is a bookable catalog item (Photography, Video, 3D Scan, ...).
type Service struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:100;not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Icon        string  `json:"icon" gorm:"size:50"`
}

// AddonService is an optional supplement (Virtual Staging, Floor Plan, ...)
// restricted to a subset of catalog services. An empty ApplicableServices
// list means the addon applies to every service.
type AddonService struct {
	BaseModel
	Name               string   `json:"name" gorm:"size:100;not null"`
	Description        string   `json:"description"`
	Price              float64  `json:"price" gorm:"not null"`
	ApplicableServices UUIDList `json:"applicable_services" gorm:"type:jsonb"`
}

// AppliesTo reports whether the addon may be attached to the given service.
func (a *AddonService) AppliesTo(serviceID uuid.UUID) bool {
	return len(a.ApplicableServices) == 0 || a.ApplicableServices.Contains(serviceID)
}

// Template is a social-media/listing-page design looked up by the frontend.
type Template struct {
	BaseModel
	Name         string   `json:"name" gorm:"size:255;not null"`
	Category     string   `json:"category" gorm:"size:100"`
	ThumbnailURL string   `json:"thumbnail" gorm:"size:500"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Elements     JSONList `json:"elements" gorm:"type:jsonb"`
}
