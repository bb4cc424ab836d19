package store

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrPersist wraps failures writing state to the backing KV
	ErrPersist = errors.New("failed to persist state")
)

// FieldError describes one rejected input field
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError is returned when input is rejected before any mutation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "invalid volunteer: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
