// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TravelFee is one photographer's travel charge snapshotted onto an order.
type TravelFee struct {
	PhotographerID uuid.UUID `json:"photographer_id"`
	Fee            float64   `json:"fee"`
}

type TravelFeeList []TravelFee

func (l TravelFeeList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]TravelFee{})
	}
	return json.Marshal(l)
}

func (l *TravelFeeList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l TravelFeeList) Total() float64 {
	var total float64
	for _, f := range l {
		total += f.Fee
	}
	return total
}

// Order bills one property's assignments to a customer. TotalAmount and
// TravelFees are snapshots taken at creation and are never recomputed when
// the underlying assignments change.
type Order struct {
	BaseModel
	PropertyID  uuid.UUID     `json:"property_id" gorm:"type:uuid;not null;index"`
	Property    *Property     `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	CustomerID  *uuid.UUID    `json:"customer_id" gorm:"type:uuid;index"`
	Customer    *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	TotalAmount float64       `json:"total_amount" gorm:"not null"`
	TravelFees  TravelFeeList `json:"travel_fees" gorm:"type:jsonb"`
	Status      OrderStatus   `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	DueDate     *time.Time    `json:"due_date" gorm:"type:date"`

	Lines []OrderService `json:"order_services,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderService joins an order to one of its constituent assignments.
type OrderService struct {
	BaseModel
	OrderID           uuid.UUID        `json:"order_id" gorm:"type:uuid;not null;index"`
	PropertyServiceID uuid.UUID        `json:"property_service_id" gorm:"type:uuid;not null"`
	PropertyService   *PropertyService `json:"property_service,omitempty" gorm:"foreignKey:PropertyServiceID"`
}

// Payment is the ledger record owed to a photographer for one job. The
// photographer reference is nulled rather than cascaded on user deletion so
// financial history survives.
type Payment struct {
	BaseModel
	PhotographerID *uuid.UUID    `json:"photographer_id" gorm:"type:uuid;index"`
	Photographer   *User         `json:"photographer,omitempty" gorm:"foreignKey:PhotographerID"`
	JobID          uuid.UUID     `json:"job_id" gorm:"type:uuid;not null;index"`
	Job            *Job          `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Amount         float64       `json:"amount" gorm:"not null"`
	TravelFee      float64       `json:"travel_fee" gorm:"default:0"`
	Status         PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Date           *time.Time    `json:"date" gorm:"type:date"`
}
