// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("role", validateRole)
	validate.RegisterValidation("time_slot", validateTimeSlot)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "broker", "photographer", "admin":
		return true
	}
	return false
}

// Schedule slots come in as "HH:MM" 24h clock values.
func validateTimeSlot(fl validator.FieldLevel) bool {
	slot := fl.Field().String()
	if len(slot) != 5 || slot[2] != ':' {
		return false
	}
	hh := slot[:2]
	mm := slot[3:]
	if !isDigits(hh) || !isDigits(mm) {
		return false
	}
	return hh <= "23" && mm <= "59"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "role":
		return "Role must be broker, photographer, or admin"
	case "time_slot":
		return "Time must be in HH:MM format"
	default:
		return e.Field() + " is invalid"
	}
}

// ValidationDetail flattens validator output into a single detail string.
func ValidationDetail(err error) string {
	errs := GetValidationErrors(err)
	if len(errs) == 0 {
		return "Invalid input"
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
