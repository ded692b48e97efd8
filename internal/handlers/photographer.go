// internal/handlers/photographer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

type PhotographerHandler struct {
	photographerService *services.PhotographerService
	jobService          *services.JobService
	paymentService      *services.PaymentService
}

func NewPhotographerHandler(photographerService *services.PhotographerService, jobService *services.JobService, paymentService *services.PaymentService) *PhotographerHandler {
	return &PhotographerHandler{
		photographerService: photographerService,
		jobService:          jobService,
		paymentService:      paymentService,
	}
}

// GET /photographers
func (h *PhotographerHandler) List(c *gin.Context) {
	result, err := h.photographerService.List(utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, result)
}

// GET /photographers/:id
func (h *PhotographerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.photographerService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PUT /photographers/:id updates the profile for the given user.
func (h *PhotographerHandler) UpdateProfile(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PhotographerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	profile, err := h.photographerService.UpdateProfile(principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DELETE /photographers/:id (admin)
func (h *PhotographerHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.photographerService.Delete(principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /photographers/jobs lists the calling photographer's jobs.
func (h *PhotographerHandler) MyJobs(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListForPhotographer(principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GET /photographers/payments lists the calling photographer's payments.
func (h *PhotographerHandler) MyPayments(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListForPhotographer(principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
