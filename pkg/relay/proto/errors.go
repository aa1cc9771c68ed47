package proto

import "fmt"

// ValidationError describes a schema violation of an otherwise
// parseable frame. The description is safe to echo back to the sender.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

func IsValidationError(e error) bool {
	_, ok := e.(*ValidationError)
	return ok
}
