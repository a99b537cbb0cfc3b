package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Extension keys recognised on property schemas. The x-formkit map can pin a
// field type the JSON shape alone cannot express and carry fetch endpoints
// for remotely sourced options.
const (
	extensionNamespace = "x-formkit"
	extTypeKey         = "type"
	extFetchKey        = "fetch"
)

// ImporterOptions tune document loading.
type ImporterOptions struct {
	// ResolveReferences validates the document and follows $ref targets.
	ResolveReferences bool
	// AllowExternalRefs lets the loader fetch refs outside the document.
	AllowExternalRefs bool
}

// Importer turns OpenAPI operations into form definitions: the request body
// schema of an operation becomes the field list, one field per property.
type Importer struct {
	options ImporterOptions
}

// New constructs an Importer.
func New(options ImporterOptions) *Importer {
	return &Importer{options: options}
}

// Import loads an OpenAPI document and builds a FormDefinition from the
// request body of the operation with the given operationId.
func (im *Importer) Import(ctx context.Context, doc []byte, operationID string) (schema.FormDefinition, error) {
	if len(doc) == 0 {
		return schema.FormDefinition{}, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: im.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return schema.FormDefinition{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if im.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return schema.FormDefinition{}, fmt.Errorf("openapi: validate document: %w", err)
		}
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return schema.FormDefinition{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestSchema(op)
	if body == nil {
		return schema.FormDefinition{}, fmt.Errorf("openapi: operation %q has no object request body", operationID)
	}

	def := schema.FormDefinition{
		Title:       op.Summary,
		Description: op.Description,
		Category:    "imported",
	}
	if def.Title == "" {
		def.Title = operationID
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for i, name := range names {
		prop := body.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		field, err := buildField(name, prop.Value)
		if err != nil {
			return schema.FormDefinition{}, fmt.Errorf("openapi: property %q: %w", name, err)
		}
		field.Order = i
		field.Required = required[name]
		def.Fields = append(def.Fields, field)
	}

	if err := def.Validate(); err != nil {
		return schema.FormDefinition{}, fmt.Errorf("openapi: imported definition invalid: %w", err)
	}
	return def, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			if len(mt.Schema.Value.Properties) > 0 {
				return mt.Schema.Value
			}
		}
	}
	return nil
}

func buildField(name string, prop *openapi3.Schema) (schema.Field, error) {
	field := schema.Field{
		ID:       name,
		Label:    labelFromName(name),
		HelpText: prop.Description,
	}

	ext := formkitExtension(prop.Extensions)
	if pinned, ok := ext[extTypeKey].(string); ok {
		field.Type = schema.FieldType(pinned)
		if !field.Type.Known() {
			return schema.Field{}, fmt.Errorf("unknown %s type %q", extensionNamespace, pinned)
		}
	} else {
		field.Type = inferType(prop)
	}

	if fetch, ok := ext[extFetchKey].(map[string]any); ok {
		field.Meta = fetchMeta(fetch)
	}

	if field.Type.ChoiceLike() {
		field.Options = enumOptions(prop)
		if len(field.Options) == 0 {
			return schema.Field{}, fmt.Errorf("choice field has no enum values")
		}
	}
	return field, nil
}

func inferType(prop *openapi3.Schema) schema.FieldType {
	switch {
	case prop.Type.Is("integer"), prop.Type.Is("number"):
		return schema.FieldTypeNumber
	case prop.Type.Is("array"):
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return schema.FieldTypeCheckbox
		}
		return schema.FieldTypeText
	case prop.Type.Is("string"):
		switch prop.Format {
		case "email":
			return schema.FieldTypeEmail
		case "date", "date-time":
			return schema.FieldTypeDate
		case "uri", "url":
			return schema.FieldTypeFileOrURL
		case "binary":
			return schema.FieldTypeFile
		}
		if len(prop.Enum) > 0 {
			return schema.FieldTypeSelect
		}
		if prop.MaxLength != nil && *prop.MaxLength > 255 {
			return schema.FieldTypeTextarea
		}
		return schema.FieldTypeText
	default:
		return schema.FieldTypeText
	}
}

func enumOptions(prop *openapi3.Schema) []schema.Option {
	source := prop.Enum
	if prop.Type.Is("array") && prop.Items != nil && prop.Items.Value != nil {
		source = prop.Items.Value.Enum
	}
	opts := make([]schema.Option, 0, len(source))
	for _, raw := range source {
		value, ok := raw.(string)
		if !ok || value == "" {
			continue
		}
		opts = append(opts, schema.Option{ID: value, Value: value, Label: labelFromName(value)})
	}
	return opts
}

func fetchMeta(fetch map[string]any) map[string]string {
	meta := make(map[string]string)
	if endpoint, ok := fetch["endpoint"].(string); ok && endpoint != "" {
		meta[schema.MetaFetchEndpoint] = endpoint
	}
	if key, ok := fetch["valueKey"].(string); ok && key != "" {
		meta[schema.MetaFetchValueKey] = key
	}
	if key, ok := fetch["labelKey"].(string); ok && key != "" {
		meta[schema.MetaFetchLabelKey] = key
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func formkitExtension(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	mapped, _ := raw[extensionNamespace].(map[string]any)
	return mapped
}

// labelFromName turns snake_case, kebab-case or camelCase identifiers into a
// title-cased label.
func labelFromName(name string) string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
