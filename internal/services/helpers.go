package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigflow/internal/storage"

	"github.com/go-playground/validator/v10"
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	case errors.Is(err, storage.ErrForbidden):
		return fmt.Errorf("%w: %s (%v)", ErrForbidden, operation, err)
	case errors.Is(err, storage.ErrStateMismatch):
		return fmt.Errorf("%w: %s (%v)", ErrInvalidState, operation, err)
	case errors.Is(err, storage.ErrConflict):
		// The repo layer should provide more context for conflict errors if possible
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	case errors.Is(err, storage.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, operation, err)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapScopeError maps the failure of an atomic scope. A conditioned write that
// found its record changed means another writer got there first.
func mapScopeError(err error, operation string) error {
	if errors.Is(err, storage.ErrStateMismatch) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	return mapRepoError(err, operation)
}

// validationError wraps validator output so handlers can still reach the
// field errors with errors.As.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidation, verrs)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// outcome classifies a service error for telemetry labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
