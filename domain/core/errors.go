package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound = errors.New("resource not found")

	// Calculation errors
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrNonFiniteResult   = errors.New("sample size is not a finite number")
	ErrUnknownMethod     = errors.New("unknown sample-size method")
)

// NewNotFoundError builds a not-found error for a named resource
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewNonFiniteError reports which method and stage overflowed
func NewNonFiniteError(method, stage string, value float64) error {
	return fmt.Errorf("%w: %s %s size evaluated to %v", ErrNonFiniteResult, method, stage, value)
}

// IsNotFoundError reports whether err wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNonFiniteError reports whether err wraps ErrNonFiniteResult
func IsNonFiniteError(err error) bool {
	return errors.Is(err, ErrNonFiniteResult)
}
