// internal/services/photographer_service.go
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

// PhotographerService manages photographer profiles and the deletion
// contract: a removed photographer is detached from assignments and
// payments rather than cascading into them.
type PhotographerService struct {
	db *gorm.DB
}

type PhotographerProfileRequest struct {
	Bio            string   `json:"bio"`
	Specialties    []string `json:"specialties,omitempty"`
	AvailableDates []string `json:"available_dates,omitempty"`
	TravelFee      *float64 `json:"travel_fee,omitempty" validate:"omitempty,min=0"`
}

func NewPhotographerService(db *gorm.DB) *PhotographerService {
	return &PhotographerService{db: db}
}

func (s *PhotographerService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.PhotographerProfile{}).Preload("User")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var profiles []models.PhotographerProfile
	query = utils.ApplySort(query, params, []string{"created_at", "rating", "completed_jobs"})
	if err := utils.ApplyPagination(query, params).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := utils.CreatePaginationResult(profiles, total, params)
	return &result, nil
}

func (s *PhotographerService) Get(id uuid.UUID) (*models.PhotographerProfile, error) {
	var profile models.PhotographerProfile
	err := s.db.Preload("User").
		Where("id = ? OR user_id = ?", id, id).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Photographer"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &profile, nil
}

// UpdateProfile lets a photographer edit their own profile; admins may edit
// anyone's.
func (s *PhotographerService) UpdateProfile(principal Principal, userID uuid.UUID, req *PhotographerProfileRequest) (*models.PhotographerProfile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}
	if !principal.OwnsOrAdmin(userID) {
		return nil, &ForbiddenError{}
	}

	var profile models.PhotographerProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Photographer"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	profile.Bio = req.Bio
	if req.Specialties != nil {
		profile.Specialties = models.StringList(req.Specialties)
	}
	if req.AvailableDates != nil {
		profile.AvailableDates = models.StringList(req.AvailableDates)
	}
	if req.TravelFee != nil {
		profile.TravelFee = *req.TravelFee
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

// Delete removes a photographer account. Assignments and payments keep
// their rows with the photographer reference nulled; the photographer's own
// jobs cascade away with their payments already detached.
func (s *PhotographerService) Delete(principal Principal, userID uuid.UUID) error {
	if !principal.IsAdmin() {
		return &ForbiddenError{Detail: "only admins may remove photographers"}
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Photographer"}
		}
		return fmt.Errorf("database error: %w", err)
	}
	if user.Role != models.RolePhotographer {
		return NewValidationError("user %s is not a photographer", userID)
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyService{}).Where("photographer_id = ?", userID).
			Update("photographer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).Where("photographer_id = ?", userID).
			Update("photographer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("photographer_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PhotographerProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
