// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/events"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// PaymentService tracks the photographer payout ledger. Records are created
// by job delivery; this service only reads them and walks their status
// forward: pending -> processing -> paid.
type PaymentService struct {
	db  *gorm.DB
	bus *events.Bus
}

type PaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" validate:"required"`
}

func NewPaymentService(db *gorm.DB, bus *events.Bus) *PaymentService {
	return &PaymentService{db: db, bus: bus}
}

func (s *PaymentService) Get(principal Principal, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Job").First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Payment"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	isPayee := payment.PhotographerID != nil && *payment.PhotographerID == principal.ID
	if !principal.IsAdmin() && !isPayee {
		return nil, &ForbiddenError{}
	}
	return &payment, nil
}

func (s *PaymentService) List(principal Principal, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Payment{})

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

	var payments []models.Payment
	query = utils.ApplySort(query, params, []string{"created_at", "amount", "status", "date"})
	if err := utils.ApplyPagination(query, params).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(payments, total, params)
	return &result, nil
}

// ListForPhotographer backs GET /photographers/payments.
func (s *PaymentService) ListForPhotographer(photographerID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Where("photographer_id = ?", photographerID).
		Order("created_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return payments, nil
}

// UpdateStatus walks a payment one step forward; moving to paid stamps the
// payment date.
func (s *PaymentService) UpdateStatus(principal Principal, id uuid.UUID, req *PaymentStatusRequest) (*models.Payment, error) {
	if !principal.IsAdmin() {
		return nil, &ForbiddenError{Detail: "only admins may update payment status"}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	payment, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if !payment.Status.CanTransitionTo(req.Status) {
		return nil, &InvalidTransitionError{
			Entity: "payment",
			From:   string(payment.Status),
			To:     string(req.Status),
		}
	}

	from := payment.Status
	payment.Status = req.Status
	if req.Status == models.PaymentStatusPaid {
		now := time.Now()
		payment.Date = &now
	}

	if err := s.db.Save(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.bus.Publish(events.TransitionEvent{
		Entity:   "payment",
		EntityID: payment.ID,
		From:     string(from),
		To:       string(req.Status),
	})
	return payment, nil
}
