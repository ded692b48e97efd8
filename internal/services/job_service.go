// internal/services/job_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/database"
	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// JobService runs the job state machine:
// upcoming -> in-progress -> completed, or upcoming -> cancelled (terminal).
// Delivery validates state and uploaded media, then creates the
// photographer's payment in the same transaction.
type JobService struct {
	db      *gorm.DB
	storage *StorageService
	bus     *events.Bus
}

type JobUpdateRequest struct {
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	ScheduledTime *string `json:"scheduled_time,omitempty" validate:"omitempty,time_slot"`
	Notes         *string `json:"notes,omitempty"`
}

func NewJobService(db *gorm.DB, storage *StorageService, bus *events.Bus) *JobService {
	return &JobService{db: db, storage: storage, bus: bus}
}

func (s *JobService) Get(principal Principal, id uuid.UUID) (*models.Job, error) {
	job, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsOrAdmin(job.PhotographerID) {
		return nil, &ForbiddenError{}
	}
	return job, nil
}

func (s *JobService) List(principal Principal, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Job{})

	if principal.Role == models.RolePhotographer {
		query = query.Where("photographer_id = ?", principal.ID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var jobs []models.Job
	query = utils.ApplySort(query, params, []string{"created_at", "scheduled_date", "status"})
	if err := utils.ApplyPagination(query, params).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(jobs, total, params)
	return &result, nil
}

// ListForPhotographer backs GET /photographers/jobs.
func (s *JobService) ListForPhotographer(photographerID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.Where("photographer_id = ?", photographerID).
		Order("scheduled_date asc").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Update(principal Principal, id uuid.UUID, req *JobUpdateRequest) (*models.Job, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	job, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if req.ScheduledDate != nil {
		date, err := time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			return nil, NewValidationError("scheduled_date must be YYYY-MM-DD")
		}
		job.ScheduledDate = date
	}
	if req.ScheduledTime != nil {
		job.ScheduledTime = *req.ScheduledTime
	}
	if req.Notes != nil {
		job.Notes = req.Notes
	}

	if err := s.db.Save(job).Error; err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// Start moves an upcoming job to in-progress (shoot day).
func (s *JobService) Start(principal Principal, id uuid.UUID) (*models.Job, error) {
	return s.transition(principal, id, models.JobStatusInProgress)
}

// Cancel is the only terminal branch; completed work cannot be cancelled.
func (s *JobService) Cancel(principal Principal, id uuid.UUID) (*models.Job, error) {
	return s.transition(principal, id, models.JobStatusCancelled)
}

func (s *JobService) transition(principal Principal, id uuid.UUID, next models.JobStatus) (*models.Job, error) {
	job, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransitionTo(next) {
		return nil, &InvalidTransitionError{Entity: "job", From: string(job.Status), To: string(next)}
	}

	from := job.Status
	job.Status = next
	if err := s.db.Save(job).Error; err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "job",
		EntityID: job.ID,
		From:     string(from),
		To:       string(next),
	})
	return job, nil
}

// UploadMedia stores the blob and appends its metadata to the job's
// uploaded file list. Uploading never changes the job's status; delivery is
// a separate, validated step.
func (s *JobService) UploadMedia(principal Principal, id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Job, error) {
	job, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusCancelled {
		return nil, &InvalidTransitionError{Entity: "job", From: string(job.Status), To: "media upload"}
	}

	result, err := s.storage.UploadFile(file, header, s.storage.DefaultUploadOptions("jobs"))
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	entry := models.UploadedFile{
		Key:        result.Key,
		Name:       header.Filename,
		Size:       result.Size,
		URL:        result.URL,
		UploadedAt: time.Now(),
	}

	// Re-read inside the transaction so concurrent uploads to the same job
	// cannot drop each other's entries.
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var current models.Job
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			return err
		}
		current.UploadedFiles = append(current.UploadedFiles, entry)
		if err := tx.Save(&current).Error; err != nil {
			return err
		}
		*job = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}
	return job, nil
}

// Deliver completes the job: it requires the job to be in-progress with at
// least one uploaded file, stamps delivered_at, and creates the
// photographer's payment (service price + addons, plus the profile travel
// fee) in the same transaction. Delivering an already-completed job is a
// no-op, not an error.
func (s *JobService) Deliver(principal Principal, id uuid.UUID) (*models.Job, error) {
	job, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusCompleted {
		return job, nil
	}
	if job.Status != models.JobStatusInProgress {
		return nil, &InvalidTransitionError{
			Entity: "job",
			From:   string(job.Status),
			To:     string(models.JobStatusCompleted),
		}
	}
	if len(job.UploadedFiles) == 0 {
		return nil, NewValidationError("cannot deliver a job with no uploaded files")
	}

	now := time.Now()
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		job.Status = models.JobStatusCompleted
		job.DeliveredAt = &now
		if err := tx.Save(job).Error; err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		payment := &models.Payment{
			PhotographerID: &job.PhotographerID,
			JobID:          job.ID,
			Amount:         job.Payout(),
			TravelFee:      s.travelFeeFor(tx, job.PhotographerID),
			Status:         models.PaymentStatusPending,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		// Completed work counts toward the photographer's profile.
		return tx.Model(&models.PhotographerProfile{}).
			Where("user_id = ?", job.PhotographerID).
			UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "job",
		EntityID: job.ID,
		From:     string(models.JobStatusInProgress),
		To:       string(models.JobStatusCompleted),
	})
	return job, nil
}

func (s *JobService) Delete(principal Principal, id uuid.UUID) error {
	job, err := s.get(id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin() {
		return &ForbiddenError{Detail: "only admins may delete jobs"}
	}

	// Jobs cascade-delete their payments.
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(job).Error
	})
}

func (s *JobService) get(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Job"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &job, nil
}

func (s *JobService) travelFeeFor(tx *gorm.DB, photographerID uuid.UUID) float64 {
	var profile models.PhotographerProfile
	if err := tx.Where("user_id = ?", photographerID).First(&profile).Error; err != nil {
		return 0
	}
	return profile.TravelFee
}
