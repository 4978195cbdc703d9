package service

import (
	"computer-maintenance-api/internal/repository"
	apperrors "computer-maintenance-api/pkg/errors"
	"computer-maintenance-api/pkg/validation"
	"context"
	"errors"
	"fmt"
)

// storeError converts a repository failure into an AppError. AppErrors returned from
// inside a transaction pass through unchanged.
func storeError(err error, resource, op string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFoundError(resource)
	case errors.Is(err, repository.ErrDuplicateSerialNumber):
		return apperrors.AlreadyExistsError(resource + " with this serial number")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return apperrors.IntegrityErrorWithCause(
			fmt.Sprintf("cannot %s %s: referenced record is missing or still in use", op, resource), err)
	case errors.Is(err, repository.ErrCheckViolation):
		return apperrors.ValidationError(fmt.Sprintf("%s violates a value constraint", resource))
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.TimeoutError(op + " " + resource)
	default:
		return apperrors.DatabaseError(fmt.Sprintf("failed to %s %s", op, resource), err)
	}
}

// validateInput runs the struct tags of v through the shared validator.
func validateInput(v interface{}) error {
	if fields := validation.Struct(v); fields != nil {
		return apperrors.ValidationErrorWithDetails("Validation failed", fields)
	}
	return nil
}

// requireNotBlank rejects supplied string fields that are empty after trimming.
// Nil entries are fields that were not supplied and are skipped.
func requireNotBlank(fields map[string]*string) error {
	blank := make(map[string]string)
	for name, v := range fields {
		if v == nil {
			continue
		}
		if err := validation.ValidateRequired(name, *v); err != nil {
			blank[name] = err.Error()
		}
	}
	if len(blank) > 0 {
		return apperrors.ValidationErrorWithDetails("Validation failed", blank)
	}
	return nil
}
