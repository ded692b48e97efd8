// internal/services/property_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/database"
	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// PropertyService is the broker-owned property registry.
type PropertyService struct {
	db  *gorm.DB
	bus *events.Bus
}

type PropertyRequest struct {
	Address      string                `json:"address" validate:"required"`
	City         string                `json:"city" validate:"required"`
	State        string                `json:"state" validate:"required"`
	ZipCode      string                `json:"zip_code" validate:"required"`
	PropertyType models.PropertyType   `json:"property_type" validate:"required"`
	SquareFeet   *int                  `json:"square_feet,omitempty"`
	Bedrooms     *int                  `json:"bedrooms,omitempty"`
	Bathrooms    *float64              `json:"bathrooms,omitempty"`
	YearBuilt    *int                  `json:"year_built,omitempty"`
	LotSize      *int                  `json:"lot_size,omitempty"`
	Price        *float64              `json:"price,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Features     []string              `json:"features,omitempty"`
	Template     *models.TemplateStyle `json:"landing_page_template,omitempty"`
}

type PropertyUpdateRequest struct {
	PropertyRequest
	Status *models.PropertyStatus `json:"status,omitempty"`
}

func NewPropertyService(db *gorm.DB, bus *events.Bus) *PropertyService {
	return &PropertyService{db: db, bus: bus}
}

func (s *PropertyService) Create(principal Principal, req *PropertyRequest) (*models.Property, error) {
	if !principal.Role.Can(models.CapOwnProperties) {
		return nil, &ForbiddenError{Detail: "only brokers may create properties"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}
	if !req.PropertyType.Valid() {
		return nil, NewValidationError("invalid property type %q", req.PropertyType)
	}

	property := &models.Property{
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: req.PropertyType,
		SquareFeet:   req.SquareFeet,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		YearBuilt:    req.YearBuilt,
		LotSize:      req.LotSize,
		Price:        req.Price,
		Description:  req.Description,
		Features:     models.StringList(req.Features),
		Status:       models.PropertyStatusDraft,
		Template:     req.Template,
		OwnerID:      principal.ID,
	}

	if err := s.db.Create(property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return property, nil
}

// List scopes results by role: brokers see their own registry, admins see
// everything, photographers see every property (they need addresses for
// assigned work).
func (s *PropertyService) List(principal Principal, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Property{})

	if principal.Role == models.RoleBroker {
		query = query.Where("owner_id = ?", principal.ID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("address ILIKE ? OR city ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var properties []models.Property
	query = utils.ApplySort(query, params, []string{"created_at", "address", "city", "status"})
	if err := utils.ApplyPagination(query, params).Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(properties, total, params)
	return &result, nil
}

func (s *PropertyService) Get(principal Principal, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := s.db.Preload("Owner").First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Property"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &property, nil
}

func (s *PropertyService) Update(principal Principal, id uuid.UUID, req *PropertyUpdateRequest) (*models.Property, error) {
	property, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return nil, &ForbiddenError{}
	}
	if err := utils.ValidateStruct(&req.PropertyRequest); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	previous := property.Status
	if req.Status != nil && *req.Status != property.Status {
		if !property.Status.CanTransitionTo(*req.Status) {
			return nil, &InvalidTransitionError{
				Entity: "property",
				From:   string(property.Status),
				To:     string(*req.Status),
			}
		}
		property.Status = *req.Status
	}

	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	property.PropertyType = req.PropertyType
	property.SquareFeet = req.SquareFeet
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.YearBuilt = req.YearBuilt
	property.LotSize = req.LotSize
	property.Price = req.Price
	property.Description = req.Description
	property.Features = models.StringList(req.Features)
	property.Template = req.Template

	if err := s.db.Save(property).Error; err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if property.Status != previous {
		s.bus.Publish(events.TransitionEvent{
			Entity:   "property",
			EntityID: property.ID,
			From:     string(previous),
			To:       string(property.Status),
		})
	}
	return property, nil
}

// Delete removes a property and, explicitly, everything it owns: its
// assignments, its orders with their join rows, and its media records.
func (s *PropertyService) Delete(principal Principal, id uuid.UUID) error {
	property, err := s.Get(principal, id)
	if err != nil {
		return err
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return &ForbiddenError{}
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var orderIDs []uuid.UUID
		if err := tx.Model(&models.Order{}).Where("property_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return err
		}
		return tx.Delete(property).Error
	})
}
