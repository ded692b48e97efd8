// internal/models/property.go
package models

import "github.com/google/uuid"

type Property struct {
	BaseModel
	Address      string         `json:"address" gorm:"size:500;not null"`
	City         string         `json:"city" gorm:"size:100;not null"`
	State        string         `json:"state" gorm:"size:50;not null"`
	ZipCode      string         `json:"zip_code" gorm:"size:10;not null"`
	PropertyType PropertyType   `json:"property_type" gorm:"type:varchar(20);not null"`
	SquareFeet   *int           `json:"square_feet"`
	Bedrooms     *int           `json:"bedrooms"`
	Bathrooms    *float64       `json:"bathrooms"`
	YearBuilt    *int           `json:"year_built"`
	LotSize      *int           `json:"lot_size"`
	Price        *float64       `json:"price"`
	Description  *string        `json:"description"`
	Features     StringList     `json:"features" gorm:"type:jsonb"`
	Status       PropertyStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Template     *TemplateStyle `json:"landing_page_template" gorm:"type:varchar(20)"`
	OwnerID      uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Owner        *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	// Relationships
	Assignments []PropertyService `json:"services,omitempty" gorm:"foreignKey:PropertyID"`
	Orders      []Order           `json:"orders,omitempty" gorm:"foreignKey:PropertyID"`
	Media       []Media           `json:"media,omitempty" gorm:"foreignKey:PropertyID"`
}
