// Package formkit builds, previews and fills schema-driven forms. The root
// package re-exports the pieces most integrations need; the sub-packages
// carry the full API: pkg/authoring edits definitions, pkg/runtime fills
// them, pkg/renderers render them.
package formkit

import (
	"context"
	"io"

	"github.com/goliatone/go-formkit/pkg/authoring"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/runtime"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// FormDefinition is the persistable unit shared by the authoring engine and
// the runtime renderer.
type FormDefinition = schema.FormDefinition

// Field is one typed input slot in a definition.
type Field = schema.Field

// ComputedSpec declares how a runtime field derives its value from others.
type ComputedSpec = runtime.ComputedSpec

// NewEditor exposes the authoring constructor from the top-level module.
func NewEditor(opts ...authoring.EditorOption) *authoring.Editor {
	return authoring.NewEditor(opts...)
}

// NewSession exposes the runtime constructor from the top-level module.
func NewSession(def schema.FormDefinition, opts ...runtime.SessionOption) (*runtime.Session, error) {
	return runtime.New(def, opts...)
}

// Preview renders a static HTML preview of the definition. It is the
// simplest entry point for admin preview panes.
func Preview(w io.Writer, def schema.FormDefinition) error {
	renderer, err := html.New()
	if err != nil {
		return err
	}
	return renderer.Render(w, def)
}

// ImportOpenAPI builds a definition from an OpenAPI operation's request
// body.
func ImportOpenAPI(ctx context.Context, doc []byte, operationID string) (schema.FormDefinition, error) {
	return openapi.New(openapi.ImporterOptions{}).Import(ctx, doc, operationID)
}
