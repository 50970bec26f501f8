// Package apperror holds the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every package-level not-found sentinel.
var ErrNotFound = errors.New("not found")

// ValidationError marks a rejected request. Err is usually a package sentinel.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}

	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func Invalid(err error, details string) error {
	return &ValidationError{Err: err, Details: details}
}

// Invalidf is Invalid with a formatted details string.
func Invalidf(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
