package authoring

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// AddOption appends an editable option to a choice-like field and returns its
// id. The option starts as "Option N" with a matching machine value. A
// missing field or a non-choice field is a silent no-op returning "".
func (e *Editor) AddOption(fieldID string) string {
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return ""
	}
	field := &e.def.Fields[idx]
	if !field.Type.ChoiceLike() {
		return ""
	}

	n := len(field.Options) + 1
	opt := schema.Option{
		ID:    "opt_" + e.newID(),
		Value: fmt.Sprintf("option%d", n),
		Label: fmt.Sprintf("Option %d", n),
	}
	field.Options = append(field.Options, opt)
	e.dirty = true
	return opt.ID
}

// OptionPatch is a partial update applied by UpdateOption. When only the
// label changes, the machine value is re-derived from it as a lowercase slug,
// mirroring how operators edit option labels inline.
type OptionPatch struct {
	Label *string
	Value *string
}

// UpdateOption shallow-merges the patch into the matching option. Missing
// field or option ids are silent no-ops.
func (e *Editor) UpdateOption(fieldID, optionID string, patch OptionPatch) {
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return
	}
	field := &e.def.Fields[idx]
	for i := range field.Options {
		if field.Options[i].ID != optionID {
			continue
		}
		if patch.Label != nil {
			field.Options[i].Label = *patch.Label
			if patch.Value == nil {
				field.Options[i].Value = slugify(*patch.Label)
			}
		}
		if patch.Value != nil {
			field.Options[i].Value = *patch.Value
		}
		e.dirty = true
		return
	}
}

// DeleteOption removes an option from a choice-like field. It fails with
// ErrMinimumOptionViolation when the delete would leave the field with zero
// options. Missing field or option ids are no-ops.
func (e *Editor) DeleteOption(fieldID, optionID string) error {
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return nil
	}
	field := &e.def.Fields[idx]
	for i := range field.Options {
		if field.Options[i].ID != optionID {
			continue
		}
		if field.Type.ChoiceLike() && len(field.Options) == 1 {
			return schemaErr(fieldID, ErrMinimumOptionViolation)
		}
		field.Options = append(field.Options[:i], field.Options[i+1:]...)
		e.dirty = true
		return nil
	}
	return nil
}
