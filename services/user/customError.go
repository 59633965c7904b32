package user

import "fmt"

// DuplicateEmailError signals that an account already exists for the email.
type DuplicateEmailError struct {
	Email string
}

func (e DuplicateEmailError) Error() string {
	return fmt.Sprintf("an account with email %s already exists", e.Email)
}

// InvalidCredentialsError covers both unknown email and wrong password, so
// the response never reveals which one failed.
type InvalidCredentialsError struct{}

func (e InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

// UserNotFoundError signals a missing account.
type UserNotFoundError struct {
	ID string
}

func (e UserNotFoundError) Error() string {
	return fmt.Sprintf("user %s not found", e.ID)
}
