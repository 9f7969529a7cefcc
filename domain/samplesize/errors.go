package samplesize

import (
	"errors"
	"fmt"
	"strings"

	"trialsize/domain/core"
)

// FieldError describes why one input was rejected
type FieldError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s=%q: %s", e.Field, e.Value, e.Reason)
}

// ValidationError enumerates every offending field of one input set
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%v: %s", core.ErrInvalidParameters, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match core.ErrInvalidParameters
func (e *ValidationError) Unwrap() error {
	return core.ErrInvalidParameters
}

// Has reports whether a field was rejected
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Lookup(field)
	return ok
}

// Lookup returns the error for a field
func (e *ValidationError) Lookup(field string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldError{}, false
}

// ByField indexes the errors by field key, for form rendering
func (e *ValidationError) ByField() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Reason
	}
	return out
}

func (e *ValidationError) add(fe FieldError) {
	if e.Has(fe.Field) {
		return
	}
	e.Fields = append(e.Fields, fe)
}

// AsValidationError extracts a *ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
