package authoring_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/authoring"
	"github.com/goliatone/go-formkit/pkg/fieldtype"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// newTestEditor returns an editor with deterministic ids: seq1, seq2, ...
func newTestEditor(t *testing.T, opts ...authoring.EditorOption) *authoring.Editor {
	t.Helper()
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("seq%d", n)
	}
	return authoring.NewEditor(append([]authoring.EditorOption{authoring.WithIDGenerator(gen)}, opts...)...)
}

func fieldIDs(def schema.FormDefinition) []string {
	var out []string
	for _, field := range schema.SortedFields(def) {
		out = append(out, field.ID)
	}
	return out
}

func orders(def schema.FormDefinition) []int {
	var out []int
	for _, field := range schema.SortedFields(def) {
		out = append(out, field.Order)
	}
	return out
}

func TestAddFieldInstallsRegistryDefaults(t *testing.T) {
	e := newTestEditor(t)

	id, err := e.AddField(schema.FieldTypeEducation)
	if err != nil {
		t.Fatalf("AddField: %v", err)
	}

	def := e.Definition()
	field, ok := def.Field(id)
	if !ok {
		t.Fatalf("field %q missing from definition", id)
	}
	if field.Label != "Highest Education Level" {
		t.Fatalf("unexpected default label %q", field.Label)
	}
	if field.Order != 0 {
		t.Fatalf("first field must have order 0, got %d", field.Order)
	}
	if diff := cmp.Diff(fieldtype.DefaultOptions(schema.FieldTypeEducation), field.Options); diff != "" {
		t.Fatalf("default options mismatch (-want +got):\n%s", diff)
	}

	textID, err := e.AddField(schema.FieldTypeText)
	if err != nil {
		t.Fatalf("AddField(text): %v", err)
	}
	textField, _ := e.Definition().Field(textID)
	if len(textField.Options) != 0 {
		t.Fatalf("text field must have no options, got %v", textField.Options)
	}
	if textField.Order != 1 {
		t.Fatalf("appended field must have order 1, got %d", textField.Order)
	}
}

func TestAddFieldRejectsUnknownType(t *testing.T) {
	e := newTestEditor(t)
	if _, err := e.AddField("hologram"); !errors.Is(err, fieldtype.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
	if len(e.Definition().Fields) != 0 {
		t.Fatalf("rejected mutation must not change state")
	}
}

func TestUpdateFieldMergesPatch(t *testing.T) {
	e := newTestEditor(t)
	id, _ := e.AddField(schema.FieldTypeText)

	label := "Student Name"
	required := true
	e.UpdateField(id, authoring.FieldPatch{Label: &label, Required: &required})

	field, _ := e.Definition().Field(id)
	if field.Label != "Student Name" || !field.Required {
		t.Fatalf("patch not applied: %+v", field)
	}
	if field.Placeholder != "Enter your name" {
		t.Fatalf("untouched members must survive the merge, got placeholder %q", field.Placeholder)
	}
}

func TestUpdateFieldMissingIsNoop(t *testing.T) {
	e := newTestEditor(t)
	e.AddField(schema.FieldTypeText)
	before := e.Definition()

	label := "changed"
	e.UpdateField("ghost", authoring.FieldPatch{Label: &label})

	if diff := cmp.Diff(before, e.Definition()); diff != "" {
		t.Fatalf("missing field update must be a no-op (-want +got):\n%s", diff)
	}
}

func TestDeleteFieldMinimumCardinality(t *testing.T) {
	e := newTestEditor(t)
	id, _ := e.AddField(schema.FieldTypeText)

	err := e.DeleteField(id)
	if !errors.Is(err, authoring.ErrMinimumFieldViolation) {
		t.Fatalf("expected ErrMinimumFieldViolation, got %v", err)
	}
	if len(e.Definition().Fields) != 1 {
		t.Fatalf("form must retain exactly one field")
	}

	var schemaErr *authoring.SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.FieldID != id {
		t.Fatalf("expected SchemaError naming field %q, got %v", id, err)
	}
}

func TestDeleteFieldKeepsSurvivorOrders(t *testing.T) {
	e := newTestEditor(t)
	a, _ := e.AddField(schema.FieldTypeText)
	b, _ := e.AddField(schema.FieldTypeEmail)
	c, _ := e.AddField(schema.FieldTypePhone)

	if err := e.DeleteField(b); err != nil {
		t.Fatalf("DeleteField: %v", err)
	}

	def := e.Definition()
	if diff := cmp.Diff([]string{a, c}, fieldIDs(def)); diff != "" {
		t.Fatalf("survivor order mismatch (-want +got):\n%s", diff)
	}
	// Order values keep their gaps until the next reorder; renderers sort by
	// order instead of assuming density.
	if diff := cmp.Diff([]int{0, 2}, orders(def)); diff != "" {
		t.Fatalf("orders must be untouched by delete (-want +got):\n%s", diff)
	}
}

func TestReorderRestoresDensePermutation(t *testing.T) {
	e := newTestEditor(t)
	a, _ := e.AddField(schema.FieldTypeText)
	b, _ := e.AddField(schema.FieldTypeEmail)
	c, _ := e.AddField(schema.FieldTypePhone)
	d, _ := e.AddField(schema.FieldTypeDate)

	e.DeleteField(b) // leave a gap first

	if err := e.Reorder(d, 0); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	def := e.Definition()
	if diff := cmp.Diff([]string{d, a, c}, fieldIDs(def)); diff != "" {
		t.Fatalf("reordered ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, orders(def)); diff != "" {
		t.Fatalf("reorder must yield dense 0..N-1 orders (-want +got):\n%s", diff)
	}
}

func TestReorderIsIdempotentAtCurrentIndex(t *testing.T) {
	e := newTestEditor(t)
	a, _ := e.AddField(schema.FieldTypeText)
	b, _ := e.AddField(schema.FieldTypeEmail)

	if err := e.Reorder(b, 1); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	def := e.Definition()
	if diff := cmp.Diff([]string{a, b}, fieldIDs(def)); diff != "" {
		t.Fatalf("idempotent reorder changed ordering (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, orders(def)); diff != "" {
		t.Fatalf("orders mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderClampsTargetIndex(t *testing.T) {
	e := newTestEditor(t)
	a, _ := e.AddField(schema.FieldTypeText)
	b, _ := e.AddField(schema.FieldTypeEmail)

	if err := e.Reorder(a, 99); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if diff := cmp.Diff([]string{b, a}, fieldIDs(e.Definition())); diff != "" {
		t.Fatalf("clamped reorder mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderInvariantUnderMutationSequences(t *testing.T) {
	e := newTestEditor(t)
	var ids []string
	for i := 0; i < 6; i++ {
		id, err := e.AddField(schema.FieldTypeText)
		if err != nil {
			t.Fatalf("AddField: %v", err)
		}
		ids = append(ids, id)
	}

	e.DeleteField(ids[2])
	e.DeleteField(ids[4])
	if err := e.Reorder(ids[5], 1); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	def := e.Definition()
	want := make([]int, len(def.Fields))
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, orders(def)); diff != "" {
		t.Fatalf("order set must equal {0..N-1} after reorder (-want +got):\n%s", diff)
	}
}

func TestChangeFieldTypePolicies(t *testing.T) {
	t.Run("into domain choice installs fixed set", func(t *testing.T) {
		e := newTestEditor(t)
		id, _ := e.AddField(schema.FieldTypeText)

		if err := e.ChangeFieldType(id, schema.FieldTypeProficiency); err != nil {
			t.Fatalf("ChangeFieldType: %v", err)
		}
		field, _ := e.Definition().Field(id)
		if diff := cmp.Diff(fieldtype.DefaultOptions(schema.FieldTypeProficiency), field.Options); diff != "" {
			t.Fatalf("domain defaults mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("between generic choice types retains custom options", func(t *testing.T) {
		e := newTestEditor(t)
		id, _ := e.AddField(schema.FieldTypeSelect)
		optID := e.AddOption(id)
		label := "Weekend batch"
		e.UpdateOption(id, optID, authoring.OptionPatch{Label: &label})

		if err := e.ChangeFieldType(id, schema.FieldTypeCheckbox); err != nil {
			t.Fatalf("ChangeFieldType: %v", err)
		}
		field, _ := e.Definition().Field(id)
		if len(field.Options) != 2 {
			t.Fatalf("custom options must survive a generic-to-generic change, got %v", field.Options)
		}
	})

	t.Run("out of choice discards options", func(t *testing.T) {
		e := newTestEditor(t)
		id, _ := e.AddField(schema.FieldTypeSelect)

		if err := e.ChangeFieldType(id, schema.FieldTypeTextarea); err != nil {
			t.Fatalf("ChangeFieldType: %v", err)
		}
		field, _ := e.Definition().Field(id)
		if len(field.Options) != 0 {
			t.Fatalf("options must be discarded on exit from choice-like types, got %v", field.Options)
		}

		// Back into a generic choice type: the placeholder default returns.
		if err := e.ChangeFieldType(id, schema.FieldTypeSelect); err != nil {
			t.Fatalf("ChangeFieldType back: %v", err)
		}
		field, _ = e.Definition().Field(id)
		if diff := cmp.Diff(fieldtype.DefaultOptions(schema.FieldTypeSelect), field.Options); diff != "" {
			t.Fatalf("placeholder default mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEditorFromDefinitionClones(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Seed",
		Fields: []schema.Field{
			{ID: "a", Type: schema.FieldTypeText, Label: "A", Order: 0},
		},
	}
	e, err := authoring.EditorFromDefinition(def)
	if err != nil {
		t.Fatalf("EditorFromDefinition: %v", err)
	}

	def.Fields[0].Label = "mutated"
	if got, _ := e.Definition().Field("a"); got.Label != "A" {
		t.Fatalf("editor must own a clone of the seed definition")
	}
}
