// internal/services/principal.go
package services

import (
	"github.com/google/uuid"

	"github.com/heaponte4/aerea/internal/models"
)

// Principal is the authenticated actor behind a request. Every workflow
// operation takes it explicitly; nothing reads it from ambient state.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// OwnsOrAdmin is the standard ownership gate: admins bypass ownership.
func (p Principal) OwnsOrAdmin(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == ownerID
}
