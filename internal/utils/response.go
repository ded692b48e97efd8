// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Domain and auth errors surface to clients as {"detail": "..."} with the
// matching status code.
type DetailBody struct {
	Detail string `json:"detail"`
}

func DetailResponse(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, DetailBody{Detail: detail})
}

func BadRequestResponse(c *gin.Context, detail string) {
	DetailResponse(c, http.StatusBadRequest, detail)
}

func UnauthorizedResponse(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Authentication credentials were not provided"
	}
	DetailResponse(c, http.StatusUnauthorized, detail)
}

func ForbiddenResponse(c *gin.Context, detail string) {
	if detail == "" {
		detail = "You do not have permission to perform this action"
	}
	DetailResponse(c, http.StatusForbidden, detail)
}

func NotFoundResponse(c *gin.Context, resource string) {
	DetailResponse(c, http.StatusNotFound, resource+" not found")
}

func ConflictResponse(c *gin.Context, detail string) {
	DetailResponse(c, http.StatusConflict, detail)
}

func InternalErrorResponse(c *gin.Context) {
	DetailResponse(c, http.StatusInternalServerError, "Internal server error")
}

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
