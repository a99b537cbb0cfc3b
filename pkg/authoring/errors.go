package authoring

import (
	"errors"
	"fmt"
)

// Sentinel schema errors. Mutations that would violate a schema invariant are
// rejected and leave the editor state untouched.
var (
	// ErrMinimumFieldViolation rejects a delete that would leave the form
	// with zero fields.
	ErrMinimumFieldViolation = errors.New("authoring: a form must retain at least one field")
	// ErrMinimumOptionViolation rejects an option delete that would leave a
	// choice-like field with zero options.
	ErrMinimumOptionViolation = errors.New("authoring: a choice field must retain at least one option")
	// ErrEmptyTitle rejects a save of a definition without a title.
	ErrEmptyTitle = errors.New("authoring: form title is required")
	// ErrNoFields rejects a save of a definition without fields.
	ErrNoFields = errors.New("authoring: form has no fields")
)

// SchemaError attaches the offending field to a rejected mutation. Use
// errors.Is against the sentinels above to branch on the cause.
type SchemaError struct {
	FieldID string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.FieldID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.FieldID)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func schemaErr(fieldID string, err error) error {
	return &SchemaError{FieldID: fieldID, Err: err}
}
