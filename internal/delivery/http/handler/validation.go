package handler

import (
	"fmt"

	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError rejects a request before it reaches the store.
func validationError(fields []FieldError) error {
	return middleware.NewAppError(
		fiber.StatusUnprocessableEntity,
		"Validation failed",
		fiber.Map{"code": "validation_error", "fields": fields},
		nil,
	)
}

func errCode(code string) fiber.Map {
	return fiber.Map{"code": code}
}

func checkMaxLen(fields []FieldError, field, value string, max int) []FieldError {
	if len(value) > max {
		return append(fields, FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)})
	}
	return fields
}

func checkOptionalMaxLen(fields []FieldError, field string, value *string, max int) []FieldError {
	if value == nil {
		return fields
	}
	return checkMaxLen(fields, field, *value, max)
}

func checkRequired(fields []FieldError, field, value string) []FieldError {
	if value == "" {
		return append(fields, FieldError{Field: field, Message: "is required"})
	}
	return fields
}
