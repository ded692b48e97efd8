// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UUIDList is a JSON-encoded list of entity IDs stored in a single column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// StringList is a JSON-encoded list of strings (features, specialties).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// JSONList holds a list of loosely structured objects (design template
// elements). Kept opaque on purpose; nothing in the workflow reads into it.
type JSONList []map[string]interface{}

func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]map[string]interface{}{})
	}
	return json.Marshal(l)
}

func (l *JSONList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return nil
}

// Enums
type Role string

const (
	RoleBroker       Role = "broker"
	RolePhotographer Role = "photographer"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleBroker || r == RolePhotographer || r == RoleAdmin
}

// Capabilities describe what each role may do. Ownership checks are applied
// on top of these; admin bypasses ownership entirely.
type Capability string

const (
	CapOwnProperties  Capability = "own_properties"
	CapTakeAssignment Capability = "take_assignments"
	CapManageCatalog  Capability = "manage_catalog"
	CapManageBilling  Capability = "manage_billing"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleBroker: {
		CapOwnProperties: true,
		CapManageBilling: true,
	},
	RolePhotographer: {
		CapTakeAssignment: true,
	},
	RoleAdmin: {
		CapOwnProperties:  true,
		CapTakeAssignment: false,
		CapManageCatalog:  true,
		CapManageBilling:  true,
	},
}

func (r Role) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	return ok && caps[c]
}

type PropertyStatus string

const (
	PropertyStatusDraft      PropertyStatus = "draft"
	PropertyStatusScheduled  PropertyStatus = "scheduled"
	PropertyStatusInProgress PropertyStatus = "in-progress"
	PropertyStatusCompleted  PropertyStatus = "completed"
)

var propertyStatusOrder = map[PropertyStatus]int{
	PropertyStatusDraft:      0,
	PropertyStatusScheduled:  1,
	PropertyStatusInProgress: 2,
	PropertyStatusCompleted:  3,
}

// CanTransitionTo enforces the forward-only property lifecycle.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	from, okFrom := propertyStatusOrder[s]
	to, okTo := propertyStatusOrder[next]
	return okFrom && okTo && to >= from
}

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCommercial PropertyType = "commercial"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeCondo, PropertyTypeApartment, PropertyTypeCommercial:
		return true
	}
	return false
}

type TemplateStyle string

const (
	TemplateStyleModern  TemplateStyle = "modern"
	TemplateStyleLuxury  TemplateStyle = "luxury"
	TemplateStyleClassic TemplateStyle = "classic"
)

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusScheduled AssignmentStatus = "scheduled"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// CanTransitionTo enforces pending -> scheduled -> completed, forward-only.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	switch s {
	case AssignmentStatusPending:
		return next == AssignmentStatusScheduled
	case AssignmentStatusScheduled:
		return next == AssignmentStatusCompleted
	}
	return false
}

type JobStatus string

const (
	JobStatusUpcoming   JobStatus = "upcoming"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// CanTransitionTo enforces upcoming -> in-progress -> completed, with
// upcoming -> cancelled as the only terminal branch.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusUpcoming:
		return next == JobStatusInProgress || next == JobStatusCancelled
	case JobStatusInProgress:
		return next == JobStatusCompleted
	}
	return false
}

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
)

var orderStatusOrder = map[OrderStatus]int{
	OrderStatusDraft:     0,
	OrderStatusPending:   1,
	OrderStatusPaid:      2,
	OrderStatusCompleted: 3,
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, okFrom := orderStatusOrder[s]
	to, okTo := orderStatusOrder[next]
	return okFrom && okTo && to == from+1
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
)

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusProcessing
	case PaymentStatusProcessing:
		return next == PaymentStatusPaid
	}
	return false
}

type MediaType string

const (
	MediaTypePhoto  MediaType = "photo"
	MediaTypeVideo  MediaType = "video"
	MediaType3DScan MediaType = "3d-scan"
)

func (t MediaType) Valid() bool {
	return t == MediaTypePhoto || t == MediaTypeVideo || t == MediaType3DScan
}
