// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/database"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

type CustomerService struct {
	db *gorm.DB
}

type CustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone"`
	Company *string `json:"company,omitempty"`
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Create(principal Principal, req *CustomerRequest) (*models.Customer, error) {
	if !principal.Role.Can(models.CapManageBilling) {
		return nil, &ForbiddenError{Detail: "only brokers and admins may manage customers"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	if err := s.db.Create(customer).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, NewValidationError("a customer with this email already exists")
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) Get(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Customer"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Customer{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var customers []models.Customer
	query = utils.ApplySort(query, params, []string{"created_at", "name", "email"})
	if err := utils.ApplyPagination(query, params).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(customers, total, params)
	return &result, nil
}

func (s *CustomerService) Update(principal Principal, id uuid.UUID, req *CustomerRequest) (*models.Customer, error) {
	if !principal.Role.Can(models.CapManageBilling) {
		return nil, &ForbiddenError{Detail: "only brokers and admins may manage customers"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	customer, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Company = req.Company

	if err := s.db.Save(customer).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, NewValidationError("a customer with this email already exists")
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// Delete nulls the customer reference on orders instead of cascading, so
// billing history survives.
func (s *CustomerService) Delete(principal Principal, id uuid.UUID) error {
	if !principal.Role.Can(models.CapManageBilling) {
		return &ForbiddenError{Detail: "only brokers and admins may manage customers"}
	}

	customer, err := s.Get(id)
	if err != nil {
		return err
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(customer).Error
	})
}
