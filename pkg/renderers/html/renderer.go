// Package html renders read-only previews of form definitions. Output is
// static markup for the authoring preview pane; it shows what the published
// form will look like without wiring any behavior.
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/fieldtype"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Renderer turns a form definition into preview markup. Author-supplied text
// is run through a bluemonday policy before it reaches the template, so
// labels and help text cannot smuggle markup into the page.
type Renderer struct {
	engine   template.TemplateRenderer
	policy   *bluemonday.Policy
	template string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine replaces the default embedded-template engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithPolicy replaces the default strict sanitization policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithTemplateName renders through a different template in the engine's
// search path.
func WithTemplateName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.template = name
		}
	}
}

// New builds a Renderer backed by the embedded preview templates.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		policy:   bluemonday.StrictPolicy(),
		template: "form",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("html: build template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render writes the preview markup for the definition. Fields appear in
// Order, not slice position. Fields with types this build does not know
// degrade to plain text inputs.
func (r *Renderer) Render(w io.Writer, def schema.FormDefinition) error {
	def = fieldtype.Normalize(def)
	if err := def.Validate(); err != nil {
		return err
	}
	_, err := r.engine.RenderTemplate(r.template, r.viewModel(def), w)
	return err
}

// RenderString is Render into a string, for callers assembling larger pages.
func (r *Renderer) RenderString(def schema.FormDefinition) (string, error) {
	def = fieldtype.Normalize(def)
	if err := def.Validate(); err != nil {
		return "", err
	}
	return r.engine.RenderTemplate(r.template, r.viewModel(def))
}

type formView struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []fieldView `json:"fields"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"input_type"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	HelpText    string       `json:"help_text"`
	Multiple    bool         `json:"multiple"`
	Accept      string       `json:"accept"`
	Options     []optionView `json:"options"`
}

type optionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (r *Renderer) viewModel(def schema.FormDefinition) formView {
	view := formView{
		Title:       r.policy.Sanitize(def.Title),
		Description: r.policy.Sanitize(def.Description),
	}
	for _, f := range schema.SortedFields(def) {
		fv := fieldView{
			ID:          f.ID,
			Kind:        kindOf(f.Type),
			InputType:   inputTypeOf(f.Type),
			Label:       r.policy.Sanitize(f.Label),
			Placeholder: r.policy.Sanitize(f.Placeholder),
			Required:    f.Required,
			HelpText:    r.policy.Sanitize(f.HelpText),
			Multiple:    f.Type.Multi(),
		}
		if f.Type.FileBacked() {
			fv.Accept = acceptFor(f)
		}
		for _, o := range f.Options {
			fv.Options = append(fv.Options, optionView{
				Value: o.Value,
				Label: r.policy.Sanitize(o.Label),
			})
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// acceptFor builds the file input's accept attribute from the field's upload
// purpose. Purposes that allow anything produce no attribute.
func acceptFor(f schema.Field) string {
	purpose := fieldtype.UploadPurpose(f.Meta[schema.MetaUploadPurpose])
	if purpose == "" || purpose == fieldtype.PurposeAny {
		return ""
	}
	return strings.Join(fieldtype.AcceptedExtensions(purpose), ",")
}

// kindOf buckets field types into the template blocks that render them.
func kindOf(t schema.FieldType) string {
	switch t {
	case schema.FieldTypeTextarea:
		return "textarea"
	case schema.FieldTypeSelect, schema.FieldTypeLanguage, schema.FieldTypeProficiency,
		schema.FieldTypeEducation, schema.FieldTypeTimePreference:
		return "select"
	case schema.FieldTypeCheckbox:
		return "checkbox-group"
	case schema.FieldTypeSelectFetch, schema.FieldTypeMultiFetch:
		return "remote-select"
	case schema.FieldTypeFile:
		return "file"
	case schema.FieldTypeFileOrURL:
		return "file-or-url"
	default:
		return "input"
	}
}

// inputTypeOf picks the HTML input type for plain input fields.
func inputTypeOf(t schema.FieldType) string {
	switch t {
	case schema.FieldTypeEmail:
		return "email"
	case schema.FieldTypePhone:
		return "tel"
	case schema.FieldTypeDate:
		return "date"
	case schema.FieldTypeNumber:
		return "number"
	default:
		return "text"
	}
}
