package booking

import "fmt"

// ValidationError reports malformed or out-of-range input. The caller must
// correct the request; it is never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a missing listing or booking.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// AuthorizationError reports that the actor lacks the role or ownership the
// operation requires.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConflictError reports that the requested date range is unavailable, either
// because a consuming booking holds it or because the host blocked it. The
// two sources carry distinct messages but map to the same HTTP class.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InvalidTransitionError reports a status change outside the transition
// table. It names both statuses so the caller can diagnose a lost race.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.Current, e.Requested)
}

func newValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
