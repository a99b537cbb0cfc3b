package fieldtype

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Category groups field types for presentation in authoring UIs. It carries
// no behaviour.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryContact     Category = "contact"
	CategoryConsultancy Category = "consultancy"
	CategoryChoice      Category = "choice"
	CategoryDocuments   Category = "documents"
	CategoryAdvanced    Category = "advanced"
)

// ErrUnknownFieldType is returned by Lookup for types outside the catalogue.
// Callers should fall back to the generic text descriptor (Fallback) rather
// than fail rendering.
var ErrUnknownFieldType = errors.New("fieldtype: unknown field type")

// Descriptor is the static registry entry for one field kind: its display
// label for type pickers, the defaults installed when a field of this kind is
// created, and the category used for grouping.
type Descriptor struct {
	Type               schema.FieldType
	DisplayLabel       string
	DefaultLabel       string
	DefaultPlaceholder string
	Category           Category
}

// catalogue is the closed set of descriptors, in picker order.
var catalogue = []Descriptor{
	{Type: schema.FieldTypeText, DisplayLabel: "Name", DefaultLabel: "Full Name", DefaultPlaceholder: "Enter your name", Category: CategoryBasic},
	{Type: schema.FieldTypeEmail, DisplayLabel: "Email", DefaultLabel: "Email Address", DefaultPlaceholder: "your.email@example.com", Category: CategoryContact},
	{Type: schema.FieldTypePhone, DisplayLabel: "Phone", DefaultLabel: "Phone Number", DefaultPlaceholder: "+977-9XXXXXXXXX", Category: CategoryContact},
	{Type: schema.FieldTypeDate, DisplayLabel: "Date", DefaultLabel: "Date of Birth", Category: CategoryBasic},
	{Type: schema.FieldTypeNumber, DisplayLabel: "Number", DefaultLabel: "Enter a number", DefaultPlaceholder: "0", Category: CategoryBasic},
	{Type: schema.FieldTypeTextarea, DisplayLabel: "Long Text", DefaultLabel: "Additional Information", DefaultPlaceholder: "Enter detailed information", Category: CategoryBasic},
	{Type: schema.FieldTypeLanguage, DisplayLabel: "Language Choice", DefaultLabel: "Which language would you like to learn?", Category: CategoryConsultancy},
	{Type: schema.FieldTypeProficiency, DisplayLabel: "Current Level", DefaultLabel: "Your current proficiency level", Category: CategoryConsultancy},
	{Type: schema.FieldTypeEducation, DisplayLabel: "Education", DefaultLabel: "Highest Education Level", Category: CategoryConsultancy},
	{Type: schema.FieldTypeTimePreference, DisplayLabel: "Time Preference", DefaultLabel: "Preferred Class Time", Category: CategoryConsultancy},
	{Type: schema.FieldTypeSelect, DisplayLabel: "Multiple Choice", DefaultLabel: "Choose an option", Category: CategoryChoice},
	{Type: schema.FieldTypeCheckbox, DisplayLabel: "Multiple Select", DefaultLabel: "Select all that apply", Category: CategoryChoice},
	{Type: schema.FieldTypeFile, DisplayLabel: "File Upload", DefaultLabel: "Upload Document/Photo", Category: CategoryDocuments},
	{Type: schema.FieldTypeFileOrURL, DisplayLabel: "File or URL", DefaultLabel: "Upload a file or paste a link", Category: CategoryDocuments},
	{Type: schema.FieldTypeSelectFetch, DisplayLabel: "Remote Choice", DefaultLabel: "Choose an option", Category: CategoryAdvanced},
	{Type: schema.FieldTypeMultiFetch, DisplayLabel: "Remote Multi Select", DefaultLabel: "Select all that apply", Category: CategoryAdvanced},
}

var byType = func() map[schema.FieldType]Descriptor {
	out := make(map[schema.FieldType]Descriptor, len(catalogue))
	for _, desc := range catalogue {
		out[desc.Type] = desc
	}
	return out
}()

// Lookup resolves a field type to its descriptor. Unknown types return
// ErrUnknownFieldType wrapped with the offending value.
func Lookup(t schema.FieldType) (Descriptor, error) {
	desc, ok := byType[t]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}
	return desc, nil
}

// Fallback returns the generic text descriptor used when a stored definition
// references a type this build no longer knows about.
func Fallback() Descriptor {
	return byType[schema.FieldTypeText]
}

// Normalize returns a clone of the definition with unknown field types
// degraded to the generic text fallback. Stored definitions can carry types
// this build does not know about; render and fill paths degrade those fields
// to plain text inputs instead of refusing the whole form.
func Normalize(def schema.FormDefinition) schema.FormDefinition {
	out := def.Clone()
	for i := range out.Fields {
		if out.Fields[i].Type.Known() {
			continue
		}
		out.Fields[i].Type = Fallback().Type
	}
	return out
}

// List returns the catalogue in picker order.
func List() []Descriptor {
	return append([]Descriptor(nil), catalogue...)
}

// ByCategory returns catalogue entries for a category, preserving picker
// order.
func ByCategory(cat Category) []Descriptor {
	var out []Descriptor
	for _, desc := range catalogue {
		if desc.Category == cat {
			out = append(out, desc)
		}
	}
	return out
}

// Categories returns the distinct categories in first-appearance order.
func Categories() []Category {
	seen := make(map[Category]struct{}, 8)
	var out []Category
	for _, desc := range catalogue {
		if _, ok := seen[desc.Category]; ok {
			continue
		}
		seen[desc.Category] = struct{}{}
		out = append(out, desc.Category)
	}
	return out
}
