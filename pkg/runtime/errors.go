package runtime

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownField is returned when a value operation names a field that is
// not part of the session's schema.
var ErrUnknownField = errors.New("runtime: unknown field")

// ErrFieldComputed is returned when a caller tries to write a field whose
// value is currently auto-computed from its dependencies.
var ErrFieldComputed = errors.New("runtime: field value is auto-computed")

// DependencyError reports an invalid computed-field configuration. It is
// raised at schema-load time so misconfigured schemas fail fast instead of
// looping at runtime.
type DependencyError struct {
	FieldID string
	Reason  string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("runtime: computed field %q: %s", e.FieldID, e.Reason)
}

// FetchError reports a failed remote option fetch for a single field.
// Failures are isolated: one field's FetchError never aborts sibling fetches
// or the overall render.
type FetchError struct {
	FieldID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("runtime: fetch options for field %q: %v", e.FieldID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError blocks submission, reporting messages per offending field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "runtime: validation failed"
	}
	ids := make([]string, 0, len(e.Fields))
	for id := range e.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %s", id, strings.Join(e.Fields[id], "; ")))
	}
	return "runtime: validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(fieldID, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[fieldID] = append(e.Fields[fieldID], msg)
}
