// internal/handlers/property.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type PropertyHandler struct {
	propertyService   *services.PropertyService
	assignmentService *services.AssignmentService
	mediaService      *services.MediaService
}

func NewPropertyHandler(propertyService *services.PropertyService, assignmentService *services.AssignmentService, mediaService *services.MediaService) *PropertyHandler {
	return &PropertyHandler{
		propertyService:   propertyService,
		assignmentService: assignmentService,
		mediaService:      mediaService,
	}
}

// POST /properties
func (h *PropertyHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req services.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	property, err := h.propertyService.Create(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// GET /properties
func (h *PropertyHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	result, err := h.propertyService.List(principal, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, result)
}

// GET /properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.Get(principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// PUT /properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PropertyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	property, err := h.propertyService.Update(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// DELETE /properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /properties/:id/services
func (h *PropertyHandler) ListServices(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.ListForProperty(principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// GET /properties/:id/media
func (h *PropertyHandler) ListMedia(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.ListForProperty(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}
