// internal/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	result, err := h.catalogService.ListServices()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /services/:id
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogService.GetService(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// GET /services/addons?service_id=...
func (h *CatalogHandler) ListAddons(c *gin.Context) {
	var serviceID *uuid.UUID
	if raw := c.Query("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid service_id")
			return
		}
		serviceID = &id
	}

	addons, err := h.catalogService.ListAddons(serviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addons)
}

// POST /services (admin)
func (h *CatalogHandler) CreateService(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req services.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.CreateService(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// PUT /services/:id (admin)
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.UpdateService(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DELETE /services/:id (admin)
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteService(principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /services/addons (admin)
func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req services.AddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	addon, err := h.catalogService.CreateAddon(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addon)
}

// GET /templates
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	templates, err := h.catalogService.ListTemplates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}
