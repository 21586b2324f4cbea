package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy for lifecycle operations. Handlers translate these with
// errors.Is; everything else is treated as a persistence failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflictRetry means a conditional write lost a race to a concurrent
	// writer. The caller may re-read and retry once; the engine never loops.
	ErrConflictRetry = errors.New("conflict, retry")

	ErrPersistence = errors.New("persistence failure")
)

// InvalidTransitionf wraps ErrInvalidTransition with a short, user-safe reason.
func InvalidTransitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

// Forbiddenf wraps ErrForbidden with a short, user-safe reason.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
