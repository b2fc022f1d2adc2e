package domain

import (
	"fmt"
	"strings"
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field-scoped violations so the caller gets the
// full list back instead of the first failure only.
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	return e.Add(field, message)
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
	return e
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
