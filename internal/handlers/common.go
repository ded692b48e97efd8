// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/services"
	"github.com/heaponte4/aerea/internal/utils"
)

// getPrincipal builds the acting principal from the auth middleware context.
func getPrincipal(c *gin.Context) (services.Principal, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return services.Principal{}, false
	}
	role, ok := utils.GetUserRoleFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return services.Principal{}, false
	}
	return services.Principal{ID: userID, Role: models.Role(role)}, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to the HTTP error surface. Unknown errors
// are logged and surface as a bare 500.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		transitionErr *services.InvalidTransitionError
		conflictErr   *services.ConflictError
		forbiddenErr  *services.ForbiddenError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.BadRequestResponse(c, validationErr.Detail)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenRevoked):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.As(err, &notFoundErr):
		utils.NotFoundResponse(c, notFoundErr.Resource)
	case errors.As(err, &transitionErr):
		utils.ConflictResponse(c, transitionErr.Error())
	case errors.As(err, &conflictErr):
		utils.ConflictResponse(c, conflictErr.Detail)
	case errors.As(err, &forbiddenErr):
		utils.ForbiddenResponse(c, forbiddenErr.Error())
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled error")
		utils.InternalErrorResponse(c)
	}
}

func respondList(c *gin.Context, result *utils.PaginationResult) {
	utils.SetPaginationHeaders(c, *result)
	c.JSON(http.StatusOK, result)
}
