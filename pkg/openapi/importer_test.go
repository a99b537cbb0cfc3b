package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

const registrationDoc = `
openapi: 3.0.3
info:
  title: Consultancy API
  version: 1.0.0
paths:
  /students:
    post:
      operationId: registerStudent
      summary: Student Registration
      description: Register a new student for classes.
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [full_name, email]
              properties:
                full_name:
                  type: string
                email:
                  type: string
                  format: email
                enrollment_date:
                  type: string
                  format: date
                language:
                  type: string
                  enum: [ielts, german, japanese]
                  x-formkit:
                    type: language-selection
                teacher:
                  type: string
                  x-formkit:
                    type: select-fetch
                    fetch:
                      endpoint: /api/teachers
                      valueKey: id
                      labelKey: name
                notes:
                  type: string
                  maxLength: 2000
      responses:
        "201":
          description: created
`

func TestImportBuildsDefinition(t *testing.T) {
	im := New(ImporterOptions{})
	def, err := im.Import(context.Background(), []byte(registrationDoc), "registerStudent")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if def.Title != "Student Registration" {
		t.Errorf("Title = %q", def.Title)
	}
	if def.Description != "Register a new student for classes." {
		t.Errorf("Description = %q", def.Description)
	}

	byID := map[string]schema.Field{}
	for _, f := range def.Fields {
		byID[f.ID] = f
	}

	cases := []struct {
		id       string
		wantType schema.FieldType
		required bool
	}{
		{"full_name", schema.FieldTypeText, true},
		{"email", schema.FieldTypeEmail, true},
		{"enrollment_date", schema.FieldTypeDate, false},
		{"language", schema.FieldTypeLanguage, false},
		{"teacher", schema.FieldTypeSelectFetch, false},
		{"notes", schema.FieldTypeTextarea, false},
	}
	for _, tc := range cases {
		f, ok := byID[tc.id]
		if !ok {
			t.Errorf("field %q missing from import", tc.id)
			continue
		}
		if f.Type != tc.wantType {
			t.Errorf("field %q type = %q, want %q", tc.id, f.Type, tc.wantType)
		}
		if f.Required != tc.required {
			t.Errorf("field %q required = %v, want %v", tc.id, f.Required, tc.required)
		}
	}

	if got := byID["full_name"].Label; got != "Full Name" {
		t.Errorf("full_name label = %q", got)
	}

	wantOptions := []schema.Option{
		{ID: "ielts", Value: "ielts", Label: "Ielts"},
		{ID: "german", Value: "german", Label: "German"},
		{ID: "japanese", Value: "japanese", Label: "Japanese"},
	}
	if diff := cmp.Diff(wantOptions, byID["language"].Options); diff != "" {
		t.Errorf("language options mismatch (-want +got):\n%s", diff)
	}

	wantMeta := map[string]string{
		schema.MetaFetchEndpoint: "/api/teachers",
		schema.MetaFetchValueKey: "id",
		schema.MetaFetchLabelKey: "name",
	}
	if diff := cmp.Diff(wantMeta, byID["teacher"].Meta); diff != "" {
		t.Errorf("teacher fetch meta mismatch (-want +got):\n%s", diff)
	}

	// Orders are dense and follow the sorted property names.
	for i, f := range def.Fields {
		if f.Order != i {
			t.Errorf("field %q order = %d, want %d", f.ID, f.Order, i)
		}
	}
}

func TestImportUnknownOperation(t *testing.T) {
	im := New(ImporterOptions{})
	if _, err := im.Import(context.Background(), []byte(registrationDoc), "nope"); err == nil {
		t.Fatal("Import() with an unknown operationId should fail")
	}
}

func TestImportEmptyDocument(t *testing.T) {
	im := New(ImporterOptions{})
	if _, err := im.Import(context.Background(), nil, "registerStudent"); err == nil {
		t.Fatal("Import() with an empty document should fail")
	}
}

func TestImportRejectsUnknownPinnedType(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /x:
    post:
      operationId: createX
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                weird:
                  type: string
                  x-formkit:
                    type: hologram
      responses:
        "200": {description: ok}
`
	im := New(ImporterOptions{})
	if _, err := im.Import(context.Background(), []byte(doc), "createX"); err == nil {
		t.Fatal("Import() with an unknown pinned type should fail")
	}
}
