package runtime

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/schema"
)

func countryDefinition() schema.FormDefinition {
	return schema.FormDefinition{
		Title: "Country",
		Fields: []schema.Field{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, Order: 0},
			{ID: "code", Type: schema.FieldTypeText, Label: "Code", Order: 1},
			{ID: "flag", Type: schema.FieldTypeFileOrURL, Label: "Flag", Order: 2},
		},
		Version: 1,
	}
}

func flagSpecs() map[string]ComputedSpec {
	return map[string]ComputedSpec{
		"flag": {
			DependsOn: []string{"code"},
			Template:  "https://flagcdn.com/w80/{code}.png",
		},
	}
}

func newCountrySession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()
	opts = append([]SessionOption{WithComputedSpecs(flagSpecs())}, opts...)
	s, err := New(countryDefinition(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestComputedFieldFollowsDependency(t *testing.T) {
	s := newCountrySession(t)

	if err := s.SetValue("code", "fr"); err != nil {
		t.Fatalf("SetValue(code) error = %v", err)
	}
	v, _ := s.Value("flag")
	if v != "https://flagcdn.com/w80/fr.png" {
		t.Fatalf("flag = %v, want derived flagcdn URL", v)
	}

	st, err := s.FieldState("flag")
	if err != nil {
		t.Fatalf("FieldState() error = %v", err)
	}
	if st.Editable || !st.Computed {
		t.Fatalf("flag state = %+v, want computed and not editable", st)
	}

	// Manual writes are rejected while the value is derived.
	if err := s.SetValue("flag", "https://example.com/other.png"); !errors.Is(err, ErrFieldComputed) {
		t.Fatalf("SetValue(flag) error = %v, want ErrFieldComputed", err)
	}

	// Re-applying the same dependency value changes nothing.
	if err := s.SetValue("code", "fr"); err != nil {
		t.Fatalf("SetValue(code) again error = %v", err)
	}
	v, _ = s.Value("flag")
	if v != "https://flagcdn.com/w80/fr.png" {
		t.Fatalf("flag after repeat = %v", v)
	}
}

func TestComputedFieldRevertsWhenDependencyCleared(t *testing.T) {
	s := newCountrySession(t)

	if err := s.SetValue("code", "np"); err != nil {
		t.Fatalf("SetValue(code) error = %v", err)
	}
	if err := s.SetValue("code", ""); err != nil {
		t.Fatalf("SetValue(code, empty) error = %v", err)
	}

	if v, ok := s.Value("flag"); ok {
		t.Fatalf("flag = %v, want cleared after dependency removed", v)
	}
	st, _ := s.FieldState("flag")
	if !st.Editable {
		t.Fatal("flag should be editable once the dependency is unsatisfied")
	}
	if err := s.SetValue("flag", "https://example.com/manual.png"); err != nil {
		t.Fatalf("manual SetValue(flag) error = %v", err)
	}
}

func TestSetValueUnknownField(t *testing.T) {
	s := newCountrySession(t)
	if err := s.SetValue("nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("SetValue(nope) error = %v, want ErrUnknownField", err)
	}
}

func TestValuesReturnsSnapshot(t *testing.T) {
	s := newCountrySession(t)
	if err := s.SetValue("name", "Nepal"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	snap := s.Values()
	snap["name"] = "changed"
	if v, _ := s.Value("name"); v != "Nepal" {
		t.Fatalf("session value mutated through snapshot: %v", v)
	}
}

func TestFieldStateOptionsFromSchema(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Prefs",
		Fields: []schema.Field{
			{
				ID: "slot", Type: schema.FieldTypeTimePreference, Label: "Slot", Order: 0,
				Options: []schema.Option{
					{ID: "morning", Value: "morning", Label: "Morning (6 AM - 10 AM)"},
					{ID: "evening", Value: "evening", Label: "Evening (4 PM - 8 PM)"},
				},
			},
		},
	}
	s, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	st, err := s.FieldState("slot")
	if err != nil {
		t.Fatalf("FieldState() error = %v", err)
	}
	if diff := cmp.Diff(def.Fields[0].Options, st.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsAreSortedByOrder(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Shuffled",
		Fields: []schema.Field{
			{ID: "c", Type: schema.FieldTypeText, Label: "C", Order: 5},
			{ID: "a", Type: schema.FieldTypeText, Label: "A", Order: 0},
			{ID: "b", Type: schema.FieldTypeText, Label: "B", Order: 2},
		},
	}
	s, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var ids []string
	for _, f := range s.Fields() {
		ids = append(ids, f.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDegradesUnknownFieldTypes(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Legacy",
		Fields: []schema.Field{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Order: 0},
			{ID: "widget", Type: "legacy-widget", Label: "Widget", Order: 1},
		},
	}
	s, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	fields := s.Fields()
	if fields[1].Type != schema.FieldTypeText {
		t.Fatalf("widget type = %q, want degraded to text", fields[1].Type)
	}
	mustSet(t, s, "widget", "still usable")
	if v, _ := s.Value("widget"); v != "still usable" {
		t.Fatalf("widget = %v, want the typed value", v)
	}
}

func TestInitialValuesTriggerResolution(t *testing.T) {
	s := newCountrySession(t, WithInitialValues(map[string]any{"code": "de"}))
	v, _ := s.Value("flag")
	if v != "https://flagcdn.com/w80/de.png" {
		t.Fatalf("flag = %v, want derived from initial values", v)
	}
}
