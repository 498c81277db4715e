package domain

import "errors"

// Sentinel errors shared by services, adapters and the HTTP error handler.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("username already exists")
	ErrUnauthorized    = errors.New("invalid username or pin")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrTransport       = errors.New("could not reach server")
	ErrNotFound        = errors.New("not found")
	ErrNoSession       = errors.New("no active session")
)

// ValidationError carries a message meant for the end user and matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
