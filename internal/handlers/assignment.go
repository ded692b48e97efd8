// internal/handlers/assignment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// POST /property-services
func (h *AssignmentHandler) Assign(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req services.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.Assign(principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GET /property-services
func (h *AssignmentHandler) List(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	result, err := h.assignmentService.List(principal, utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, result)
}

// GET /property-services/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.Get(principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// POST /property-services/:id/schedule
func (h *AssignmentHandler) Schedule(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.Schedule(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// POST /property-services/:id/complete
func (h *AssignmentHandler) Complete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.Complete(principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DELETE /property-services/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
