// internal/handlers/media.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// POST /media/upload (multipart: file, property_id, service_id, type)
func (h *MediaHandler) Upload(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.PostForm("property_id"))
	if err != nil {
		utils.BadRequestResponse(c, "property_id is required")
		return
	}
	serviceID, err := uuid.Parse(c.PostForm("service_id"))
	if err != nil {
		utils.BadRequestResponse(c, "service_id is required")
		return
	}
	mediaType := models.MediaType(c.PostForm("type"))
	if !mediaType.Valid() {
		utils.BadRequestResponse(c, "type must be one of photo, video, 3d-scan")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required")
		return
	}
	defer file.Close()

	media, err := h.mediaService.Upload(principal, propertyID, serviceID, mediaType, file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// GET /media
func (h *MediaHandler) List(c *gin.Context) {
	result, err := h.mediaService.List(utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, result)
}

// GET /media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

// DELETE /media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
