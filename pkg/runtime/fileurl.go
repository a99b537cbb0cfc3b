package runtime

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// InputMode selects how a file-or-url field is currently being filled.
type InputMode string

const (
	// ModeURL accepts a pasted link.
	ModeURL InputMode = "url"
	// ModeFile accepts a locally selected file for later upload.
	ModeFile InputMode = "file"
)

// inferMode derives the starting mode from an existing value: a FileRef means
// file mode, anything else (including no value) starts in url mode.
func inferMode(value any) InputMode {
	if _, ok := value.(*FileRef); ok {
		return ModeFile
	}
	return ModeURL
}

// Mode reports the current input mode of a file-or-url field.
func (s *Session) Mode(fieldID string) (InputMode, error) {
	f, ok := s.byID[fieldID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	if f.Type != schema.FieldTypeFileOrURL {
		return "", fmt.Errorf("runtime: field %q is not file-or-url", fieldID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes[fieldID], nil
}

// SwitchMode flips a file-or-url field between link entry and file selection.
// Switching clears the field's value so a stale file never shadows a link and
// vice versa, and revokes any preview the old value held. If the field has a
// computed spec whose dependencies are satisfied, switching back to url mode
// restores the derived value.
func (s *Session) SwitchMode(fieldID string, mode InputMode) error {
	f, ok := s.byID[fieldID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	if f.Type != schema.FieldTypeFileOrURL {
		return fmt.Errorf("runtime: field %q is not file-or-url", fieldID)
	}
	if mode != ModeURL && mode != ModeFile {
		return fmt.Errorf("runtime: invalid input mode %q", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modes[fieldID] == mode {
		return nil
	}
	s.revokePreviewLocked(fieldID)
	delete(s.values, fieldID)
	s.computedActive[fieldID] = false
	s.modes[fieldID] = mode
	if mode == ModeURL {
		s.resolveLocked()
	}
	return nil
}

// setFileOrURLLocked writes a file-or-url value, keeping the mode machine in
// step with the value's shape.
func (s *Session) setFileOrURLLocked(f schema.Field, value any) {
	switch value.(type) {
	case *FileRef:
		s.modes[f.ID] = ModeFile
	case string:
		s.modes[f.ID] = ModeURL
	}
	s.storeLocked(f.ID, value)
}

// Preview returns the preview handle for a field's selected file, if any.
func (s *Session) Preview(fieldID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.previews[fieldID]
	return p.url, ok
}
