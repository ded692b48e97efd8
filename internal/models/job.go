// internal/models/job.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobAddon is a priced addon snapshotted onto a job at scheduling time.
type JobAddon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type JobAddonList []JobAddon

func (l JobAddonList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]JobAddon{})
	}
	return json.Marshal(l)
}

func (l *JobAddonList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l JobAddonList) Total() float64 {
	var total float64
	for _, a := range l {
		total += a.Price
	}
	return total
}

// UploadedFile records one blob delivered against a job.
type UploadedFile struct {
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type UploadedFileList []UploadedFile

func (l UploadedFileList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]UploadedFile{})
	}
	return json.Marshal(l)
}

func (l *UploadedFileList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Job is the photographer-facing work item for one assignment. Property and
// client fields are denormalized snapshots taken when the job is created, so
// the work sheet survives later edits to the property or customer.
type Job struct {
	BaseModel
	PropertyAddress string           `json:"property_address" gorm:"size:500;not null"`
	PropertyCity    string           `json:"property_city" gorm:"size:100"`
	PropertyState   string           `json:"property_state" gorm:"size:50"`
	ServiceType     string           `json:"service_type" gorm:"size:100;not null"`
	ServicePrice    float64          `json:"service_price" gorm:"not null"`
	ScheduledDate   time.Time        `json:"scheduled_date" gorm:"type:date;not null;index"`
	ScheduledTime   string           `json:"scheduled_time" gorm:"size:20;not null"`
	Status          JobStatus        `json:"status" gorm:"type:varchar(20);default:'upcoming';index"`
	ClientName      string           `json:"client_name" gorm:"size:255"`
	ClientEmail     string           `json:"client_email" gorm:"size:255"`
	ClientPhone     *string          `json:"client_phone" gorm:"size:20"`
	Addons          JobAddonList     `json:"addons" gorm:"type:jsonb"`
	Notes           *string          `json:"notes"`
	PhotographerID  uuid.UUID        `json:"photographer_id" gorm:"type:uuid;not null;index"`
	Photographer    *User            `json:"photographer,omitempty" gorm:"foreignKey:PhotographerID"`
	UploadedFiles   UploadedFileList `json:"uploaded_files" gorm:"type:jsonb"`
	DeliveredAt     *time.Time       `json:"delivered_at"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:JobID"`
}

// Payout is the amount owed to the photographer for this job, before the
// travel fee.
func (j *Job) Payout() float64 {
	return j.ServicePrice + j.Addons.Total()
}
