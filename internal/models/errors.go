// Package models contains the persistent entities and API error types.
package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError represents a custom application error. Fields is the
// field-name to message mapping returned to the client as the body.
type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newFieldError(code, field, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// Predefined error constructors
func NewNotFoundError(field, message string) *AppError {
	return newFieldError(CodeNotFound, field, message)
}

func NewValidationError(field, message string) *AppError {
	return newFieldError(CodeValidation, field, message)
}

func NewUnauthorizedError(field, message string) *AppError {
	return newFieldError(CodeUnauthorized, field, message)
}

// NewFieldsError builds an error from a complete field error set, such as
// the output of a validator.
func NewFieldsError(code string, fields map[string]string) *AppError {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &AppError{
		Code:    code,
		Message: "request failed validation",
		Fields:  copied,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusFor maps an error to the HTTP status it is reported with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes err as a JSON error body. Field errors are
// written verbatim; anything else becomes {"error": message}. The cause of
// an internal error is logged and never sent to the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
	}

	if len(appErr.Fields) > 0 {
		return c.Status(status).JSON(appErr.Fields)
	}
	return c.Status(status).JSON(fiber.Map{"error": appErr.Message})
}
