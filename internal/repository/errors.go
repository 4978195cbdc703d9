package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors returned by every repository. Callers match them with errors.Is.
var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateSerialNumber = errors.New("serial number already registered")
	ErrForeignKeyViolation   = errors.New("referenced record is missing or still in use")
	ErrCheckViolation        = errors.New("value violates a check constraint")
)

// PostgreSQL SQLSTATE codes mapped to sentinels.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNumericOutOfRange   = "22003"
)

// mapConstraintError translates constraint failures reported by lib/pq into the
// package sentinels. It returns nil when err is not a constraint failure.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicateSerialNumber, pqErr.Constraint)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pqErr.Constraint)
	case pqCheckViolation:
		return fmt.Errorf("%w: %s", ErrCheckViolation, pqErr.Constraint)
	case pqNumericOutOfRange:
		// custo beyond NUMERIC(10,2)
		return fmt.Errorf("%w: %s", ErrCheckViolation, pqErr.Message)
	default:
		return nil
	}
}

// wrapWriteError maps constraint failures and wraps anything else with the operation name.
func wrapWriteError(op string, err error) error {
	if mapped := mapConstraintError(err); mapped != nil {
		return mapped
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
