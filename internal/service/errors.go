// Package service holds the business rules behind each API operation.
package service

import (
	"fmt"

	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

func wrapInternal(op string, err error) error {
	return models.NewInternalError(fmt.Errorf("%s: %w", op, err))
}

// notFoundOr maps a missing row to the given field error and wraps
// anything else as internal.
func notFoundOr(op string, err error, field, message string) error {
	if repository.IsNotFound(err) {
		return models.NewNotFoundError(field, message)
	}
	return wrapInternal(op, err)
}

func invalid(res validation.Result) error {
	return models.NewFieldsError(models.CodeValidation, res.Errors)
}
