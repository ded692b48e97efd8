// internal/services/order_service.go
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

// OrderService aggregates a property's assignments into a billable order.
// Totals and travel fees are computed once at creation and never
// recomputed; later assignment mutation does not touch existing orders.
type OrderService struct {
	db  *gorm.DB
	bus *events.Bus
}

type CreateOrderRequest struct {
	PropertyID         uuid.UUID          `json:"property_id" validate:"required"`
	CustomerID         *uuid.UUID         `json:"customer_id,omitempty"`
	PropertyServiceIDs []uuid.UUID        `json:"property_service_ids" validate:"required,min=1"`
	DueDate            *string            `json:"due_date,omitempty"`
	TravelFeeOverrides []models.TravelFee `json:"travel_fee_overrides,omitempty"`
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(db *gorm.DB, bus *events.Bus) *OrderService {
	return &OrderService{db: db, bus: bus}
}

// Create snapshots prices at creation time:
// total = sum(service + addons per assignment) + sum(travel fees), with one
// travel fee per distinct photographer, taken from the photographer profile
// unless an override is supplied.
func (s *OrderService) Create(principal Principal, req *CreateOrderRequest) (*models.Order, error) {
	if !principal.Role.Can(models.CapManageBilling) {
		return nil, &ForbiddenError{Detail: "only brokers and admins may create orders"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("property %s does not exist", req.PropertyID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return nil, &ForbiddenError{}
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := s.db.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("customer %s does not exist", *req.CustomerID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, NewValidationError("due_date must be YYYY-MM-DD")
		}
		dueDate = &parsed
	}

	overrides := make(map[uuid.UUID]float64, len(req.TravelFeeOverrides))
	for _, o := range req.TravelFeeOverrides {
		overrides[o.PhotographerID] = o.Fee
	}

	var servicesTotal float64
	photographers := make(map[uuid.UUID]bool)
	assignments := make([]models.PropertyService, 0, len(req.PropertyServiceIDs))

	for _, psID := range req.PropertyServiceIDs {
		var assignment models.PropertyService
		if err := s.db.First(&assignment, "id = ?", psID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("property service %s does not exist", psID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		if assignment.PropertyID != property.ID {
			return nil, NewValidationError("property service %s does not belong to the property", psID)
		}

		lineTotal, err := s.assignmentPrice(&assignment)
		if err != nil {
			return nil, err
		}
		servicesTotal += lineTotal

		if assignment.PhotographerID != nil {
			photographers[*assignment.PhotographerID] = true
		}
		assignments = append(assignments, assignment)
	}

	travelFees := make(models.TravelFeeList, 0, len(photographers))
	for photographerID := range photographers {
		fee, ok := overrides[photographerID]
		if !ok {
			fee = s.profileTravelFee(photographerID)
		}
		travelFees = append(travelFees, models.TravelFee{PhotographerID: photographerID, Fee: fee})
	}

	order := &models.Order{
		PropertyID:  property.ID,
		CustomerID:  req.CustomerID,
		TotalAmount: servicesTotal + travelFees.Total(),
		TravelFees:  travelFees,
		Status:      models.OrderStatusDraft,
		DueDate:     dueDate,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, assignment := range assignments {
			line := &models.OrderService{
				OrderID:           order.ID,
				PropertyServiceID: assignment.ID,
			}
			if err := tx.Create(line).Error; err != nil {
				return fmt.Errorf("failed to create order line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) Get(principal Principal, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").Preload("Lines.PropertyService.Service").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Order"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.authorizeOrder(principal, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(principal Principal, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Order{}).Preload("Customer")

	if principal.Role == models.RoleBroker {
		query = query.Joins("JOIN properties ON properties.id = orders.property_id").
			Where("properties.owner_id = ?", principal.ID)
	}
	if params.Status != "" {
		query = query.Where("orders.status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var orders []models.Order
	query = utils.ApplySort(query, params, []string{"created_at", "due_date", "status", "total_amount"})
	if err := utils.ApplyPagination(query, params).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

// UpdateStatus drives the order lifecycle draft -> pending -> paid ->
// completed, one step at a time.
func (s *OrderService) UpdateStatus(principal Principal, id uuid.UUID, req *OrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	order, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return nil, &InvalidTransitionError{
			Entity: "order",
			From:   string(order.Status),
			To:     string(req.Status),
		}
	}

	from := order.Status
	order.Status = req.Status
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "order",
		EntityID: order.ID,
		From:     string(from),
		To:       string(req.Status),
	})
	return order, nil
}

func (s *OrderService) Delete(principal Principal, id uuid.UUID) error {
	order, err := s.Get(principal, id)
	if err != nil {
		return err
	}

	if order.Status == models.OrderStatusPaid || order.Status == models.OrderStatusCompleted {
		return &ConflictError{Detail: "paid orders cannot be deleted"}
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderService{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

func (s *OrderService) authorizeOrder(principal Principal, order *models.Order) error {
	if principal.IsAdmin() {
		return nil
	}
	var property models.Property
	if err := s.db.First(&property, "id = ?", order.PropertyID).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if property.OwnerID != principal.ID {
		return &ForbiddenError{}
	}
	return nil
}

// assignmentPrice is the service price plus each attached addon's price.
func (s *OrderService) assignmentPrice(assignment *models.PropertyService) (float64, error) {
	var service models.Service
	if err := s.db.First(&service, "id = ?", assignment.ServiceID).Error; err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}

	total := service.Price
	for _, addonID := range assignment.AddonIDs {
		var addon models.AddonService
		if err := s.db.First(&addon, "id = ?", addonID).Error; err != nil {
			return 0, fmt.Errorf("database error: %w", err)
		}
		total += addon.Price
	}
	return total, nil
}

func (s *OrderService) profileTravelFee(photographerID uuid.UUID) float64 {
	var profile models.PhotographerProfile
	if err := s.db.Where("user_id = ?", photographerID).First(&profile).Error; err != nil {
		return 0
	}
	return profile.TravelFee
}
