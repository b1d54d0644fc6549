package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidJSON is returned when provider output is not parseable JSON.
	ErrInvalidJSON = errors.New("provider output is not valid JSON")

	// ErrSchemaViolation is returned when parseable output does not satisfy
	// the exercise schema. The concrete error is a *SchemaError carrying one
	// field path and message per violation.
	ErrSchemaViolation = errors.New("provider output violates exercise schema")
)

// Violation is a single schema failure at a specific field path.
type Violation struct {
	Path    string
	Message string
}

// SchemaError aggregates every violation found in one response.
type SchemaError struct {
	Violations []Violation
}

// Error implements error.
func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Path + ": " + v.Message
	}
	return fmt.Sprintf("%v: %s", ErrSchemaViolation, strings.Join(parts, "; "))
}

// Unwrap lets callers match with errors.Is(err, ErrSchemaViolation).
func (e *SchemaError) Unwrap() error { return ErrSchemaViolation }
