// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// CatalogService owns the read-mostly reference data: services, addon
// services, and listing-page templates. Writes are admin-only.
type CatalogService struct {
	db *gorm.DB
}

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Icon        string  `json:"icon"`
}

type AddonRequest struct {
	Name               string      `json:"name" validate:"required"`
	Description        string      `json:"description"`
	Price              float64     `json:"price" validate:"min=0"`
	ApplicableServices []uuid.UUID `json:"applicable_services"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListServices() ([]models.Service, error) {
	var services []models.Service
	if err := s.db.Order("name asc").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return services, nil
}

func (s *CatalogService) GetService(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := s.db.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Service"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &service, nil
}

// ListAddons returns every addon, or when serviceID is set only the addons
// whose applicable set is empty (applies to all) or contains the service.
func (s *CatalogService) ListAddons(serviceID *uuid.UUID) ([]models.AddonService, error) {
	var addons []models.AddonService
	if err := s.db.Order("name asc").Find(&addons).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if serviceID == nil {
		return addons, nil
	}

	filtered := make([]models.AddonService, 0, len(addons))
	for _, addon := range addons {
		if addon.AppliesTo(*serviceID) {
			filtered = append(filtered, addon)
		}
	}
	return filtered, nil
}

func (s *CatalogService) CreateService(principal Principal, req *ServiceRequest) (*models.Service, error) {
	if !principal.Role.Can(models.CapManageCatalog) {
		return nil, &ForbiddenError{Detail: "only admins may manage the catalog"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	service := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Icon:        req.Icon,
	}
	if err := s.db.Create(service).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) UpdateService(principal Principal, id uuid.UUID, req *ServiceRequest) (*models.Service, error) {
	if !principal.Role.Can(models.CapManageCatalog) {
		return nil, &ForbiddenError{Detail: "only admins may manage the catalog"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	service, err := s.GetService(id)
	if err != nil {
		return nil, err
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.Icon = req.Icon

	if err := s.db.Save(service).Error; err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) DeleteService(principal Principal, id uuid.UUID) error {
	if !principal.Role.Can(models.CapManageCatalog) {
		return &ForbiddenError{Detail: "only admins may manage the catalog"}
	}

	service, err := s.GetService(id)
	if err != nil {
		return err
	}

	var assigned int64
	s.db.Model(&models.PropertyService{}).Where("service_id = ?", id).Count(&assigned)
	if assigned > 0 {
		return &ConflictError{Detail: "service is assigned to properties and cannot be deleted"}
	}

	return s.db.Delete(service).Error
}

func (s *CatalogService) CreateAddon(principal Principal, req *AddonRequest) (*models.AddonService, error) {
	if !principal.Role.Can(models.CapManageCatalog) {
		return nil, &ForbiddenError{Detail: "only admins may manage the catalog"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	for _, serviceID := range req.ApplicableServices {
		if _, err := s.GetService(serviceID); err != nil {
			return nil, NewValidationError("applicable service %s does not exist", serviceID)
		}
	}

	addon := &models.AddonService{
		Name:               req.Name,
		Description:        req.Description,
		Price:              req.Price,
		ApplicableServices: models.UUIDList(req.ApplicableServices),
	}
	if err := s.db.Create(addon).Error; err != nil {
		return nil, fmt.Errorf("failed to create addon: %w", err)
	}
	return addon, nil
}

func (s *CatalogService) GetAddon(id uuid.UUID) (*models.AddonService, error) {
	var addon models.AddonService
	if err := s.db.First(&addon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Addon service"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &addon, nil
}

func (s *CatalogService) ListTemplates() ([]models.Template, error) {
	var templates []models.Template
	if err := s.db.Order("category asc, name asc").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return templates, nil
}
