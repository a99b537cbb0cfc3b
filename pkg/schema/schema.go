package schema

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType enumerates the closed set of field kinds the engine understands.
// Both the fieldtype registry and the runtime renderer switch exhaustively
// over this set, so adding a kind is a single-point, compile-checked change.
type FieldType string

const (
	FieldTypeText           FieldType = "text"
	FieldTypeEmail          FieldType = "email"
	FieldTypePhone          FieldType = "tel"
	FieldTypeDate           FieldType = "date"
	FieldTypeNumber         FieldType = "number"
	FieldTypeTextarea       FieldType = "textarea"
	FieldTypeSelect         FieldType = "select"
	FieldTypeCheckbox       FieldType = "checkbox"
	FieldTypeLanguage       FieldType = "language-selection"
	FieldTypeProficiency    FieldType = "proficiency-level"
	FieldTypeEducation      FieldType = "education-level"
	FieldTypeTimePreference FieldType = "time-preference"
	FieldTypeFile           FieldType = "file"
	FieldTypeFileOrURL      FieldType = "file-or-url"
	FieldTypeSelectFetch    FieldType = "select-fetch"
	FieldTypeMultiFetch     FieldType = "multiselect-fetch"
)

// FieldTypes returns every known field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypePhone,
		FieldTypeDate,
		FieldTypeNumber,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeCheckbox,
		FieldTypeLanguage,
		FieldTypeProficiency,
		FieldTypeEducation,
		FieldTypeTimePreference,
		FieldTypeFile,
		FieldTypeFileOrURL,
		FieldTypeSelectFetch,
		FieldTypeMultiFetch,
	}
}

// Known reports whether t is part of the closed catalogue.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeDate,
		FieldTypeNumber, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox,
		FieldTypeLanguage, FieldTypeProficiency, FieldTypeEducation,
		FieldTypeTimePreference, FieldTypeFile, FieldTypeFileOrURL,
		FieldTypeSelectFetch, FieldTypeMultiFetch:
		return true
	}
	return false
}

// ChoiceLike reports whether t presents a bounded option list. Fetch-sourced
// kinds are not choice-like: their options come from a remote source, not the
// schema.
func (t FieldType) ChoiceLike() bool {
	switch t {
	case FieldTypeSelect, FieldTypeCheckbox, FieldTypeLanguage,
		FieldTypeProficiency, FieldTypeEducation, FieldTypeTimePreference:
		return true
	}
	return false
}

// FetchSourced reports whether t loads its options from a remote endpoint.
func (t FieldType) FetchSourced() bool {
	return t == FieldTypeSelectFetch || t == FieldTypeMultiFetch
}

// Multi reports whether t collects multiple values.
func (t FieldType) Multi() bool {
	return t == FieldTypeCheckbox || t == FieldTypeMultiFetch
}

// FileBacked reports whether t can carry an uploaded file.
func (t FieldType) FileBacked() bool {
	return t == FieldTypeFile || t == FieldTypeFileOrURL
}

// Option is one selectable entry of a choice-like field. ID is unique within
// the owning field; Value is the machine value and Label the display text.
// Order in the slice is presentation order.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field is one typed input slot in a form definition.
type Field struct {
	ID          string            `json:"id" yaml:"id"`
	Type        FieldType         `json:"type" yaml:"type"`
	Label       string            `json:"label" yaml:"label"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Order       int               `json:"order" yaml:"order"`
	Options     []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	// Meta carries per-field configuration that does not warrant a dedicated
	// struct field: upload purpose/size limits, fetch endpoints, value/label
	// keys for fetched items.
	Meta map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Meta keys recognised by the engine.
const (
	MetaFetchEndpoint      = "fetch.endpoint"
	MetaFetchValueKey      = "fetch.valueKey"
	MetaFetchLabelKey      = "fetch.labelKey"
	MetaUploadPurpose      = "upload.purpose"
	MetaUploadMaxSizeMB    = "upload.maxSizeMB"
	MetaUploadMultiple     = "upload.multiple"
	MetaUploadInstructions = "upload.instructions"
)

// Clone deep-copies the field, including options and metadata.
func (f Field) Clone() Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]Option(nil), f.Options...)
	}
	if len(f.Meta) > 0 {
		out.Meta = make(map[string]string, len(f.Meta))
		for k, v := range f.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// Option returns the option with the given id.
func (f Field) Option(id string) (Option, bool) {
	for _, opt := range f.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// FormDefinition is the persistable unit produced by the authoring engine and
// consumed read-only by the runtime renderer. Fields have no identity outside
// their owning definition.
type FormDefinition struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
	IsPublished bool    `json:"isPublished" yaml:"isPublished"`
	// Version increments on every save; the runtime uses it to key its
	// option-fetch cache so stale responses never outlive a schema change.
	Version int `json:"version,omitempty" yaml:"version,omitempty"`
}

// Clone deep-copies the definition.
func (d FormDefinition) Clone() FormDefinition {
	out := d
	if len(d.Fields) > 0 {
		out.Fields = make([]Field, len(d.Fields))
		for i, field := range d.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Field returns the field with the given id.
func (d FormDefinition) Field(id string) (Field, bool) {
	for _, field := range d.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// SortedFields returns the fields ordered by their Order attribute, stable on
// ties. Order is only guaranteed dense immediately after a reorder, so
// consumers must sort rather than assume order equals index.
func SortedFields(d FormDefinition) []Field {
	out := make([]Field, len(d.Fields))
	for i, field := range d.Fields {
		out[i] = field.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Validate checks the structural invariants of a definition: unique non-empty
// field ids, known field types, and non-empty option lists on choice-like
// fields.
func (d FormDefinition) Validate() error {
	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return fmt.Errorf("schema: field %q has an empty id", field.Label)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("schema: duplicate field id %q", id)
		}
		seen[id] = struct{}{}

		if !field.Type.Known() {
			return fmt.Errorf("schema: field %q has unknown type %q", id, field.Type)
		}
		if field.Type.ChoiceLike() && len(field.Options) == 0 {
			return fmt.Errorf("schema: choice field %q has no options", id)
		}

		optSeen := make(map[string]struct{}, len(field.Options))
		for _, opt := range field.Options {
			if opt.ID == "" {
				return fmt.Errorf("schema: field %q has an option with empty id", id)
			}
			if _, dup := optSeen[opt.ID]; dup {
				return fmt.Errorf("schema: field %q has duplicate option id %q", id, opt.ID)
			}
			optSeen[opt.ID] = struct{}{}
		}
	}
	return nil
}
