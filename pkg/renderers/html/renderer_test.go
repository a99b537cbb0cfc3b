package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func previewDefinition() schema.FormDefinition {
	return schema.FormDefinition{
		Title:       "Class Booking",
		Description: "Book your next class.",
		Fields: []schema.Field{
			{ID: "slot", Type: schema.FieldTypeTimePreference, Label: "Preferred Time", Order: 1,
				Options: []schema.Option{
					{ID: "morning", Value: "morning", Label: "Morning (6 AM - 10 AM)"},
				}},
			{ID: "fullName", Type: schema.FieldTypeText, Label: "Full Name", Required: true, Order: 0,
				Placeholder: "Enter your full name"},
			{ID: "syllabus", Type: schema.FieldTypeFileOrURL, Label: "Syllabus", Order: 2},
		},
	}
}

func TestRenderPreview(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, previewDefinition()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Class Booking",
		"Enter your full name",
		"Morning (6 AM - 10 AM)",
		`data-field-id="syllabus"`,
		"formkit-hybrid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Fields render in declared Order, not slice position.
	if strings.Index(out, `data-field-id="fullName"`) > strings.Index(out, `data-field-id="slot"`) {
		t.Error("fields rendered out of order")
	}
}

func TestRenderSanitizesAuthorText(t *testing.T) {
	def := previewDefinition()
	def.Fields[1].Label = `Full Name<script>alert("x")</script>`
	def.Description = `<img src=x onerror=alert(1)>Book now`

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := r.RenderString(def)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "onerror") {
		t.Fatal("author-supplied markup leaked into the preview")
	}
	if !strings.Contains(out, "Full Name") || !strings.Contains(out, "Book now") {
		t.Fatal("sanitization stripped the legitimate text too")
	}
}

func TestRenderDegradesUnknownFieldType(t *testing.T) {
	def := previewDefinition()
	def.Fields = append(def.Fields, schema.Field{
		ID: "widget", Type: "legacy-widget", Label: "Legacy Widget", Order: 3,
	})

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := r.RenderString(def)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if !strings.Contains(out, `data-field-id="widget"`) {
		t.Fatal("unknown-typed field missing from the preview")
	}
	if !strings.Contains(out, `type="text" id="widget"`) {
		t.Fatal("unknown-typed field should render as a plain text input")
	}
}

func TestRenderFileAcceptHint(t *testing.T) {
	def := previewDefinition()
	def.Fields = append(def.Fields, schema.Field{
		ID: "photo", Type: schema.FieldTypeFile, Label: "Passport Photo", Order: 3,
		Meta: map[string]string{schema.MetaUploadPurpose: "photos"},
	})

	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := r.RenderString(def)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if !strings.Contains(out, `accept=".png,.jpg,.jpeg"`) {
		t.Fatal("file input missing the accept hint for its upload purpose")
	}
	// The hybrid field has no purpose configured, so its inputs stay open.
	if strings.Count(out, "accept=") != 1 {
		t.Fatalf("accept attributes = %d, want only the photo field constrained", strings.Count(out, "accept="))
	}
}

func TestRenderRejectsInvalidDefinition(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	def := schema.FormDefinition{
		Title: "x",
		Fields: []schema.Field{
			{ID: "lang", Type: schema.FieldTypeLanguage, Label: "Language"},
		},
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, def); err == nil {
		t.Fatal("Render() of an invalid definition should fail")
	}
}
