// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers map these to HTTP status codes:
// ValidationError 400, auth sentinels 401, NotFoundError 404,
// InvalidTransitionError and ConflictError 409, anything else 500.

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token is invalid or has been revoked")
)

type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition %s from %s to %s", e.Entity, e.From, e.To)
}

type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

type ForbiddenError struct {
	Detail string
}

func (e *ForbiddenError) Error() string {
	if e.Detail == "" {
		return "you do not have permission to perform this action"
	}
	return e.Detail
}
