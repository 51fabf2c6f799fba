package validation

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes why a single named input was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Reason)
}

// Errors collects every rejected field of one update or submission.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, reason string, args ...any) {
	*e = append(*e, FieldError{Field: field, Reason: fmt.Sprintf(reason, args...)})
}

// Err returns nil when no field was rejected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields extracts the field errors carried by err, if any.
func Fields(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}

	var fe FieldError
	if errors.As(err, &fe) {
		return Errors{fe}, true
	}
	return nil, false
}

// Is reports whether err carries validation failures.
func Is(err error) bool {
	_, ok := Fields(err)
	return ok
}
