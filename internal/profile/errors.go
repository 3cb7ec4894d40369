package profile

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrCorruptProfile   = errors.New("corrupt stored profile")
	// ErrModelUnavailable is returned when no Gemini API key is configured.
	ErrModelUnavailable = errors.New("gemini model not initialized")
)

// ValidationError rejects an operation before anything is written.
type ValidationError struct {
	Operation string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

func newValidationError(operation, reason string) *ValidationError {
	return &ValidationError{
		Operation: operation,
		Reason:    reason,
	}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
