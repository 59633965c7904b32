package listing

import "fmt"

// ValidationError reports a listing document that fails its write-path
// invariants.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a missing listing.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("listing %s not found", e.ID)
}

// AuthorizationError reports a mutation attempted by someone other than the
// owning host or an admin.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}
