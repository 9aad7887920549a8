package services

import "errors"

// Workflow error taxonomy. Every rejected operation wraps one of these
// sentinels with the precondition that failed, so callers can both classify
// the error with errors.Is and surface the exact reason to the user.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDependency        = errors.New("dependency failure")

	// ErrConflict is returned only when the optional status guard is enabled
	// and a concurrent transition won the race.
	ErrConflict = errors.New("conflict")
)
