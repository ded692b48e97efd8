// internal/services/media_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

// MediaService records uploaded property media and resolves public URLs
// from stored keys via the storage binding.
type MediaService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewMediaService(db *gorm.DB, storage *StorageService) *MediaService {
	return &MediaService{db: db, storage: storage}
}

// Upload stores the blob and creates the media record. All of propertyID,
// serviceID, and mediaType are required; size is captured at store time.
func (s *MediaService) Upload(principal Principal, propertyID, serviceID uuid.UUID, mediaType models.MediaType, file multipart.File, header *multipart.FileHeader) (*models.Media, error) {
	if !mediaType.Valid() {
		return nil, NewValidationError("invalid media type %q", mediaType)
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("property %s does not exist", propertyID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("service %s does not exist", serviceID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.storage.UploadFile(file, header, s.storage.DefaultUploadOptions("media"))
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	media := &models.Media{
		PropertyID: propertyID,
		ServiceID:  serviceID,
		Type:       mediaType,
		FileKey:    result.Key,
		FileName:   header.Filename,
		FileSize:   result.Size,
		UploadedAt: time.Now(),
	}
	if err := s.db.Create(media).Error; err != nil {
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}

	s.resolveURLs(media)
	return media, nil
}

func (s *MediaService) Get(id uuid.UUID) (*models.Media, error) {
	var media models.Media
	if err := s.db.First(&media, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Media"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	s.resolveURLs(&media)
	return &media, nil
}

func (s *MediaService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Media{})

	if params.Status != "" {
		query = query.Where("type = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var media []models.Media
	query = utils.ApplySort(query, params, []string{"created_at", "uploaded_at", "file_size"})
	if err := utils.ApplyPagination(query, params).Find(&media).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	for i := range media {
		s.resolveURLs(&media[i])
	}

	result := utils.CreatePaginationResult(media, total, params)
	return &result, nil
}

// ListForProperty backs GET /properties/:id/media.
func (s *MediaService) ListForProperty(propertyID uuid.UUID) ([]models.Media, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Property"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var media []models.Media
	err := s.db.Where("property_id = ?", propertyID).
		Order("uploaded_at desc").
		Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	for i := range media {
		s.resolveURLs(&media[i])
	}
	return media, nil
}

func (s *MediaService) Delete(principal Principal, id uuid.UUID) error {
	media, err := s.Get(id)
	if err != nil {
		return err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", media.PropertyID).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if !principal.OwnsOrAdmin(property.OwnerID) {
		return &ForbiddenError{}
	}

	if err := s.storage.DeleteFile(media.FileKey); err != nil {
		return err
	}
	if media.ThumbnailKey != nil {
		if err := s.storage.DeleteFile(*media.ThumbnailKey); err != nil {
			return err
		}
	}
	return s.db.Delete(media).Error
}

func (s *MediaService) resolveURLs(media *models.Media) {
	media.URL = s.storage.ResolveURL(media.FileKey)
	if media.ThumbnailKey != nil {
		url := s.storage.ResolveURL(*media.ThumbnailKey)
		media.ThumbnailURL = &url
	}
}
