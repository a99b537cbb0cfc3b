package authoring

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/fieldtype"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Notifier receives operator-facing messages (save results, rejected
// mutations). It replaces ambient toast/alert side effects with an injected
// side-channel; the default discards messages.
type Notifier func(msg string)

// Editor maintains the ordered field list of a FormDefinition under operator
// edits and enforces the ordering and uniqueness invariants. All mutations
// are local, synchronous, and in-memory; only Save/Publish touch the network.
//
// The editor owns its definition exclusively. Definition() returns deep
// copies, so callers can never mutate editor state behind its back.
type Editor struct {
	def    schema.FormDefinition
	formID string
	slug   string
	dirty  bool

	newID  func() string
	notify Notifier
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithNotifier installs the operator notification callback.
func WithNotifier(notify Notifier) EditorOption {
	return func(e *Editor) {
		if notify != nil {
			e.notify = notify
		}
	}
}

// WithIDGenerator overrides the id source for new fields and options. Tests
// use this for deterministic ids.
func WithIDGenerator(gen func() string) EditorOption {
	return func(e *Editor) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// NewEditor creates an editor over an empty definition.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		def:    schema.FormDefinition{Category: "general"},
		newID:  uuid.NewString,
		notify: func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EditorFromDefinition creates an editor seeded with an existing definition,
// for example one loaded through the forms API. The definition is cloned.
func EditorFromDefinition(def schema.FormDefinition, opts ...EditorOption) (*Editor, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	e := NewEditor(opts...)
	e.def = def.Clone()
	return e, nil
}

// Definition returns a deep copy of the current definition.
func (e *Editor) Definition() schema.FormDefinition {
	return e.def.Clone()
}

// FormID returns the persisted form id, empty until the first Save.
func (e *Editor) FormID() string { return e.formID }

// Slug returns the persisted form slug, empty until the first Save.
func (e *Editor) Slug() string { return e.slug }

// Dirty reports whether the definition has unsaved edits.
func (e *Editor) Dirty() bool { return e.dirty }

// SetTitle updates the form title.
func (e *Editor) SetTitle(title string) {
	e.def.Title = title
	e.dirty = true
}

// SetDescription updates the form description.
func (e *Editor) SetDescription(desc string) {
	e.def.Description = desc
	e.dirty = true
}

// SetCategory updates the form category.
func (e *Editor) SetCategory(category string) {
	e.def.Category = category
	e.dirty = true
}

// AddField appends a new field of the given type with registry defaults and
// order equal to the current field count. It returns the new field's id so
// callers can mark it active for immediate editing.
func (e *Editor) AddField(t schema.FieldType) (string, error) {
	desc, err := fieldtype.Lookup(t)
	if err != nil {
		return "", schemaErr("", err)
	}

	field := schema.Field{
		ID:          "field_" + e.newID(),
		Type:        desc.Type,
		Label:       desc.DefaultLabel,
		Placeholder: desc.DefaultPlaceholder,
		Order:       len(e.def.Fields),
		Options:     fieldtype.DefaultOptions(desc.Type),
	}
	e.def.Fields = append(e.def.Fields, field)
	e.dirty = true
	return field.ID, nil
}

// FieldPatch is a partial update applied by UpdateField. Nil members are
// left untouched.
type FieldPatch struct {
	Label       *string
	Placeholder *string
	Required    *bool
	HelpText    *string
	Meta        map[string]string
}

// UpdateField shallow-merges the patch into the matching field. A missing
// field id is a silent no-op: deletes race benignly with in-flight edits from
// a blurred input, so callers must not rely on an error here.
func (e *Editor) UpdateField(fieldID string, patch FieldPatch) {
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return
	}
	field := &e.def.Fields[idx]
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.HelpText != nil {
		field.HelpText = *patch.HelpText
	}
	if len(patch.Meta) > 0 {
		if field.Meta == nil {
			field.Meta = make(map[string]string, len(patch.Meta))
		}
		for k, v := range patch.Meta {
			field.Meta[k] = v
		}
	}
	e.dirty = true
}

// ChangeFieldType re-points a field at a new type. Policy for options:
// entering a domain choice type installs that type's fixed default set;
// entering a generic choice type keeps existing custom options when present
// and otherwise installs the placeholder default; leaving choice-like types
// discards options. A missing field id is a silent no-op, matching
// UpdateField.
func (e *Editor) ChangeFieldType(fieldID string, newType schema.FieldType) error {
	desc, err := fieldtype.Lookup(newType)
	if err != nil {
		return schemaErr(fieldID, err)
	}
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return nil
	}

	field := &e.def.Fields[idx]
	switch {
	case !desc.Type.ChoiceLike():
		field.Options = nil
	case desc.Type == schema.FieldTypeSelect || desc.Type == schema.FieldTypeCheckbox:
		if len(field.Options) == 0 || !field.Type.ChoiceLike() {
			field.Options = fieldtype.DefaultOptions(desc.Type)
		}
	default:
		// Domain choice types always carry their fixed catalogue.
		field.Options = fieldtype.DefaultOptions(desc.Type)
	}
	field.Type = desc.Type
	e.dirty = true
	return nil
}

// DeleteField removes a field. It fails with ErrMinimumFieldViolation when
// the form would be left empty. Surviving fields keep their order values:
// order is only guaranteed dense immediately after a Reorder, which is why
// renderers sort by order instead of assuming index equality. Deleting an
// unknown id is a no-op.
func (e *Editor) DeleteField(fieldID string) error {
	idx := e.fieldIndex(fieldID)
	if idx < 0 {
		return nil
	}
	if len(e.def.Fields) == 1 {
		return schemaErr(fieldID, ErrMinimumFieldViolation)
	}
	e.def.Fields = append(e.def.Fields[:idx], e.def.Fields[idx+1:]...)
	e.dirty = true
	return nil
}

// Reorder moves a field to targetIndex in the ordered list and reassigns
// order = index for every field, restoring the dense 0..N-1 permutation. It
// is idempotent when targetIndex equals the field's current position.
func (e *Editor) Reorder(fieldID string, targetIndex int) error {
	ordered := schema.SortedFields(e.def)
	from := -1
	for i, field := range ordered {
		if field.ID == fieldID {
			from = i
			break
		}
	}
	if from < 0 {
		return schemaErr(fieldID, fmt.Errorf("authoring: field %q not found", fieldID))
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex >= len(ordered) {
		targetIndex = len(ordered) - 1
	}

	moved := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	ordered = append(ordered[:targetIndex], append([]schema.Field{moved}, ordered[targetIndex:]...)...)

	for i := range ordered {
		ordered[i].Order = i
	}
	e.def.Fields = ordered
	e.dirty = true
	return nil
}

func (e *Editor) fieldIndex(fieldID string) int {
	for i, field := range e.def.Fields {
		if field.ID == fieldID {
			return i
		}
	}
	return -1
}

func slugify(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(label))), "-")
}
