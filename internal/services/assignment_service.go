// internal/services/assignment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/database"
	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// AssignmentService runs the PropertyService state machine:
// pending -> scheduled -> completed, forward-only. Scheduling requires a
// photographer and spawns the photographer-facing Job in the same
// transaction.
type AssignmentService struct {
	db  *gorm.DB
	bus *events.Bus
}

type AssignRequest struct {
	PropertyID     uuid.UUID   `json:"property_id" validate:"required"`
	ServiceID      uuid.UUID   `json:"service_id" validate:"required"`
	AddonIDs       []uuid.UUID `json:"addon_ids,omitempty"`
	PhotographerID *uuid.UUID  `json:"photographer_id,omitempty"`
	ScheduledDate  *string     `json:"scheduled_date,omitempty"`
	ScheduledTime  *string     `json:"scheduled_time,omitempty" validate:"omitempty,time_slot"`
	Notes          *string     `json:"notes,omitempty"`
}

type ScheduleRequest struct {
	PhotographerID uuid.UUID `json:"photographer_id" validate:"required"`
	Date           string    `json:"scheduled_date" validate:"required"`
	Time           string    `json:"scheduled_time" validate:"required,time_slot"`
}

func NewAssignmentService(db *gorm.DB, bus *events.Bus) *AssignmentService {
	return &AssignmentService{db: db, bus: bus}
}

// Assign binds a catalog service (plus addons) to a property. When a
// photographer and schedule slot are supplied up front, the assignment goes
// straight to scheduled and its job is created.
func (s *AssignmentService) Assign(principal Principal, req *AssignRequest) (*models.PropertyService, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	var property models.Property
	if err := s.db.Preload("Owner").First(&property, "id = ?", req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("property %s does not exist", req.PropertyID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return nil, &ForbiddenError{}
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", req.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("service %s does not exist", req.ServiceID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.checkAddons(req.AddonIDs, service.ID); err != nil {
		return nil, err
	}

	assignment := &models.PropertyService{
		PropertyID: property.ID,
		ServiceID:  service.ID,
		Status:     models.AssignmentStatusPending,
		Notes:      req.Notes,
		AddonIDs:   models.UUIDList(req.AddonIDs),
	}

	scheduleNow := req.PhotographerID != nil && req.ScheduledDate != nil && req.ScheduledTime != nil

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		if !scheduleNow {
			return nil
		}
		return s.scheduleTx(tx, assignment, &property, &service, &ScheduleRequest{
			PhotographerID: *req.PhotographerID,
			Date:           *req.ScheduledDate,
			Time:           *req.ScheduledTime,
		})
	})
	if err != nil {
		return nil, err
	}

	if scheduleNow {
		s.bus.Publish(events.TransitionEvent{
			Entity:   "property_service",
			EntityID: assignment.ID,
			From:     string(models.AssignmentStatusPending),
			To:       string(models.AssignmentStatusScheduled),
		})
	}
	return assignment, nil
}

// Schedule moves a pending assignment to scheduled, attaching a
// photographer and a date/time slot. The photographer must be free at that
// slot across both assignments and jobs; the linked job is created in the
// same transaction so no partial state is ever visible.
func (s *AssignmentService) Schedule(principal Principal, id uuid.UUID, req *ScheduleRequest) (*models.PropertyService, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	assignment, err := s.get(id)
	if err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.Preload("Owner").First(&property, "id = ?", assignment.PropertyID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return nil, &ForbiddenError{}
	}

	if !assignment.Status.CanTransitionTo(models.AssignmentStatusScheduled) {
		return nil, &InvalidTransitionError{
			Entity: "property service",
			From:   string(assignment.Status),
			To:     string(models.AssignmentStatusScheduled),
		}
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", assignment.ServiceID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		return s.scheduleTx(tx, assignment, &property, &service, req)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "property_service",
		EntityID: assignment.ID,
		From:     string(models.AssignmentStatusPending),
		To:       string(models.AssignmentStatusScheduled),
	})
	return assignment, nil
}

// scheduleTx performs the photographer checks, the conflict check, the
// status move, and job creation inside the caller's transaction.
func (s *AssignmentService) scheduleTx(tx *gorm.DB, assignment *models.PropertyService, property *models.Property, service *models.Service, req *ScheduleRequest) error {
	var photographer models.User
	if err := tx.Preload("Profile").First(&photographer, "id = ?", req.PhotographerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("photographer %s does not exist", req.PhotographerID)
		}
		return fmt.Errorf("database error: %w", err)
	}
	if !photographer.Role.Can(models.CapTakeAssignment) {
		return NewValidationError("user %s is not a photographer", req.PhotographerID)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError("scheduled_date must be YYYY-MM-DD")
	}

	if err := s.checkDoubleBooking(tx, photographer.ID, date, req.Time, assignment.ID); err != nil {
		return err
	}

	addons, err := s.loadAddons(tx, assignment.AddonIDs)
	if err != nil {
		return err
	}

	job := buildJob(property, service, &photographer, addons, date, req.Time)
	if err := tx.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	assignment.PhotographerID = &photographer.ID
	assignment.ScheduledDate = &date
	timeSlot := req.Time
	assignment.ScheduledTime = &timeSlot
	assignment.Status = models.AssignmentStatusScheduled
	assignment.JobID = &job.ID

	if err := tx.Save(assignment).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

// Complete moves a scheduled assignment to completed. Only the
// scheduled -> completed edge is legal.
func (s *AssignmentService) Complete(principal Principal, id uuid.UUID) (*models.PropertyService, error) {
	assignment, err := s.get(id)
	if err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", assignment.PropertyID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	isAssignee := assignment.PhotographerID != nil && *assignment.PhotographerID == principal.ID
	if !principal.OwnsOrAdmin(property.OwnerID) && !isAssignee {
		return nil, &ForbiddenError{}
	}

	if !assignment.Status.CanTransitionTo(models.AssignmentStatusCompleted) {
		return nil, &InvalidTransitionError{
			Entity: "property service",
			From:   string(assignment.Status),
			To:     string(models.AssignmentStatusCompleted),
		}
	}

	assignment.Status = models.AssignmentStatusCompleted
	if err := s.db.Save(assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "property_service",
		EntityID: assignment.ID,
		From:     string(models.AssignmentStatusScheduled),
		To:       string(models.AssignmentStatusCompleted),
	})
	return assignment, nil
}

func (s *AssignmentService) Get(principal Principal, id uuid.UUID) (*models.PropertyService, error) {
	var assignment models.PropertyService
	err := s.db.Preload("Service").Preload("Photographer").Preload("Property").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Property service"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &assignment, nil
}

func (s *AssignmentService) List(principal Principal, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PropertyService{}).Preload("Service").Preload("Photographer")

	switch principal.Role {
	case models.RoleBroker:
		query = query.Joins("JOIN properties ON properties.id = property_services.property_id").
			Where("properties.owner_id = ?", principal.ID)
	case models.RolePhotographer:
		query = query.Where("property_services.photographer_id = ?", principal.ID)
	}
	if params.Status != "" {
		query = query.Where("property_services.status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var assignments []models.PropertyService
	query = utils.ApplySort(query, params, []string{"created_at", "scheduled_date", "status"})
	if err := utils.ApplyPagination(query, params).Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(assignments, total, params)
	return &result, nil
}

// ListForProperty backs GET /properties/:id/services.
func (s *AssignmentService) ListForProperty(principal Principal, propertyID uuid.UUID) ([]models.PropertyService, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Property"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var assignments []models.PropertyService
	err := s.db.Preload("Service").Preload("Photographer").
		Where("property_id = ?", propertyID).
		Order("created_at asc").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentService) Delete(principal Principal, id uuid.UUID) error {
	assignment, err := s.get(id)
	if err != nil {
		return err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", assignment.PropertyID).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return &ForbiddenError{}
	}

	var billed int64
	s.db.Model(&models.OrderService{}).Where("property_service_id = ?", id).Count(&billed)
	if billed > 0 {
		return &ConflictError{Detail: "property service is part of an order and cannot be deleted"}
	}

	return s.db.Delete(assignment).Error
}

func (s *AssignmentService) get(id uuid.UUID) (*models.PropertyService, error) {
	var assignment models.PropertyService
	if err := s.db.First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Property service"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &assignment, nil
}

// checkAddons verifies each addon exists and is applicable to the service.
func (s *AssignmentService) checkAddons(addonIDs []uuid.UUID, serviceID uuid.UUID) error {
	for _, addonID := range addonIDs {
		var addon models.AddonService
		if err := s.db.First(&addon, "id = ?", addonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("addon %s does not exist", addonID)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if !addon.AppliesTo(serviceID) {
			return NewValidationError("addon %q is not applicable to the selected service", addon.Name)
		}
	}
	return nil
}

func (s *AssignmentService) loadAddons(tx *gorm.DB, addonIDs models.UUIDList) ([]models.AddonService, error) {
	if len(addonIDs) == 0 {
		return nil, nil
	}
	var addons []models.AddonService
	if err := tx.Where("id IN ?", []uuid.UUID(addonIDs)).Find(&addons).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return addons, nil
}

// checkDoubleBooking rejects a schedule slot the photographer already holds,
// on either an assignment or a job.
func (s *AssignmentService) checkDoubleBooking(tx *gorm.DB, photographerID uuid.UUID, date time.Time, timeSlot string, excludeID uuid.UUID) error {
	var clash int64
	err := tx.Model(&models.PropertyService{}).
		Where("photographer_id = ? AND scheduled_date = ? AND scheduled_time = ? AND id <> ?",
			photographerID, date, timeSlot, excludeID).
		Count(&clash).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if clash > 0 {
		return &ConflictError{Detail: "photographer is already booked at that date and time"}
	}

	err = tx.Model(&models.Job{}).
		Where("photographer_id = ? AND scheduled_date = ? AND scheduled_time = ? AND status IN ?",
			photographerID, date, timeSlot,
			[]models.JobStatus{models.JobStatusUpcoming, models.JobStatusInProgress}).
		Count(&clash).Error
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if clash > 0 {
		return &ConflictError{Detail: "photographer already has a job at that date and time"}
	}
	return nil
}

// buildJob snapshots the property, client, and pricing onto the work item
// handed to the photographer.
func buildJob(property *models.Property, service *models.Service, photographer *models.User, addons []models.AddonService, date time.Time, timeSlot string) *models.Job {
	jobAddons := make(models.JobAddonList, 0, len(addons))
	for _, addon := range addons {
		jobAddons = append(jobAddons, models.JobAddon{Name: addon.Name, Price: addon.Price})
	}

	job := &models.Job{
		PropertyAddress: property.Address,
		PropertyCity:    property.City,
		PropertyState:   property.State,
		ServiceType:     service.Name,
		ServicePrice:    service.Price,
		ScheduledDate:   date,
		ScheduledTime:   timeSlot,
		Status:          models.JobStatusUpcoming,
		Addons:          jobAddons,
		PhotographerID:  photographer.ID,
	}
	if property.Owner != nil {
		job.ClientName = property.Owner.FullName()
		job.ClientEmail = property.Owner.Email
		job.ClientPhone = property.Owner.Phone
	}
	return job
}
