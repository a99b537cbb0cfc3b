package authoring

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// QuickTemplate seeds an editor with a prebuilt field-type sequence for the
// common consultancy intake flows.
type QuickTemplate struct {
	ID          string
	Name        string
	Description string
	Fields      []schema.FieldType
}

var quickTemplates = []QuickTemplate{
	{
		ID:          "student-registration",
		Name:        "Student Registration",
		Description: "For new student enrollments",
		Fields: []schema.FieldType{
			schema.FieldTypeText,
			schema.FieldTypeEmail,
			schema.FieldTypePhone,
			schema.FieldTypeLanguage,
			schema.FieldTypeProficiency,
			schema.FieldTypeTimePreference,
		},
	},
	{
		ID:          "class-booking",
		Name:        "Class Booking",
		Description: "Book specific classes or batches",
		Fields: []schema.FieldType{
			schema.FieldTypeText,
			schema.FieldTypeEmail,
			schema.FieldTypePhone,
			schema.FieldTypeDate,
			schema.FieldTypeTimePreference,
			schema.FieldTypeSelect,
		},
	},
	{
		ID:          "feedback-form",
		Name:        "Feedback Survey",
		Description: "Collect student feedback",
		Fields: []schema.FieldType{
			schema.FieldTypeText,
			schema.FieldTypeEmail,
			schema.FieldTypeSelect,
			schema.FieldTypeCheckbox,
			schema.FieldTypeTextarea,
		},
	},
	{
		ID:          "contact-form",
		Name:        "Contact Form",
		Description: "General inquiries",
		Fields: []schema.FieldType{
			schema.FieldTypeText,
			schema.FieldTypeEmail,
			schema.FieldTypePhone,
			schema.FieldTypeTextarea,
		},
	},
}

// Templates returns the available quick templates.
func Templates() []QuickTemplate {
	return append([]QuickTemplate(nil), quickTemplates...)
}

// Template looks up a quick template by id.
func Template(id string) (QuickTemplate, bool) {
	for _, tpl := range quickTemplates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return QuickTemplate{}, false
}

// ApplyTemplate replaces the editor's title, description, and field list with
// the template's contents. Field ids are freshly generated.
func (e *Editor) ApplyTemplate(id string) error {
	tpl, ok := Template(id)
	if !ok {
		return fmt.Errorf("authoring: unknown template %q", id)
	}

	e.def.Title = tpl.Name
	e.def.Description = tpl.Description
	e.def.Fields = nil
	for _, ft := range tpl.Fields {
		if _, err := e.AddField(ft); err != nil {
			return err
		}
	}
	e.dirty = true
	return nil
}
