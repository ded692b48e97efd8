// internal/handlers/customer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req services.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Create(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.List(utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, result)
}

// GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Update(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
