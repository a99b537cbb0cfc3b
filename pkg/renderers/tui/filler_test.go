package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/runtime"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// fakeDriver replays scripted answers and records every prompt it sees.
type fakeDriver struct {
	t        *testing.T
	inputs   []string
	selects  []int
	multis   [][]int
	texts    []string
	messages []string
}

func (d *fakeDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected Input prompt %q", cfg.Message)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *fakeDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected Select prompt %q", cfg.Message)
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *fakeDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.multis) == 0 {
		d.t.Fatalf("unexpected MultiSelect prompt %q", cfg.Message)
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *fakeDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if len(d.texts) == 0 {
		d.t.Fatalf("unexpected TextArea prompt %q", cfg.Message)
	}
	out := d.texts[0]
	d.texts = d.texts[1:]
	return out, nil
}

func (d *fakeDriver) Info(ctx context.Context, msg string) error {
	d.messages = append(d.messages, msg)
	return nil
}

func fillDefinition() schema.FormDefinition {
	return schema.FormDefinition{
		Title: "Student Registration",
		Fields: []schema.Field{
			{ID: "fullName", Type: schema.FieldTypeText, Label: "Full Name", Required: true, Order: 0},
			{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true, Order: 1},
			{ID: "language", Type: schema.FieldTypeLanguage, Label: "Language", Required: true, Order: 2,
				Options: []schema.Option{
					{ID: "ielts", Value: "ielts", Label: "IELTS"},
					{ID: "german", Value: "german", Label: "German"},
				}},
			{ID: "slots", Type: schema.FieldTypeCheckbox, Label: "Time Slots", Order: 3,
				Options: []schema.Option{
					{ID: "morning", Value: "morning", Label: "Morning"},
					{ID: "evening", Value: "evening", Label: "Evening"},
				}},
			{ID: "notes", Type: schema.FieldTypeTextarea, Label: "Notes", Order: 4},
		},
	}
}

func TestFillerRunsThroughForm(t *testing.T) {
	session, err := runtime.New(fillDefinition())
	if err != nil {
		t.Fatalf("runtime.New() error = %v", err)
	}
	driver := &fakeDriver{
		t:       t,
		inputs:  []string{"Sita Sharma", "sita@example.com"},
		selects: []int{1},        // "German" (required select has no skip entry)
		multis:  [][]int{{0, 1}}, // both slots
		texts:   []string{""},    // skip notes
	}

	filler := NewFiller(session, WithPromptDriver(driver))
	payload, err := filler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := map[string]any{
		"fullName": "Sita Sharma",
		"email":    "sita@example.com",
		"language": "german",
		"slots":    []string{"morning", "evening"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	// Required fields are marked in the prompt message.
	if driver.messages[0] != "Full Name *" {
		t.Errorf("first prompt = %q, want required marker", driver.messages[0])
	}
}

func TestFillerSkipsComputedFields(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Country",
		Fields: []schema.Field{
			{ID: "code", Type: schema.FieldTypeText, Label: "Code", Required: true, Order: 0},
			{ID: "flag", Type: schema.FieldTypeFileOrURL, Label: "Flag", Order: 1},
		},
	}
	session, err := runtime.New(def, runtime.WithComputedSpecs(map[string]runtime.ComputedSpec{
		"flag": {DependsOn: []string{"code"}, Template: "https://flagcdn.com/w80/{code}.png"},
	}))
	if err != nil {
		t.Fatalf("runtime.New() error = %v", err)
	}

	driver := &fakeDriver{t: t, inputs: []string{"fr"}}
	filler := NewFiller(session, WithPromptDriver(driver))
	payload, err := filler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if payload["flag"] != "https://flagcdn.com/w80/fr.png" {
		t.Fatalf("flag = %v, want derived URL", payload["flag"])
	}

	var sawAutoFill bool
	for _, msg := range driver.messages {
		if strings.Contains(msg, "auto-filled") {
			sawAutoFill = true
		}
	}
	if !sawAutoFill {
		t.Fatalf("messages %v missing auto-filled notice", driver.messages)
	}
}

func TestFillerFallsBackWhenFetchFails(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Booking",
		Fields: []schema.Field{
			{ID: "teacher", Type: schema.FieldTypeSelectFetch, Label: "Teacher", Order: 0,
				Meta: map[string]string{schema.MetaFetchEndpoint: "/teachers"}},
		},
	}
	fetcher := runtime.OptionFetcherFunc(func(ctx context.Context, f schema.Field) ([]schema.Option, error) {
		return nil, errors.New("down")
	})
	session, err := runtime.New(def, runtime.WithOptionFetcher(fetcher))
	if err != nil {
		t.Fatalf("runtime.New() error = %v", err)
	}

	driver := &fakeDriver{t: t, inputs: []string{"t. rampa"}}
	filler := NewFiller(session, WithPromptDriver(driver))
	payload, err := filler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if payload["teacher"] != "t. rampa" {
		t.Fatalf("teacher = %v, want manual fallback value", payload["teacher"])
	}
}

func TestFillerFileOrURLModes(t *testing.T) {
	def := schema.FormDefinition{
		Title: "Docs",
		Fields: []schema.Field{
			{ID: "syllabus", Type: schema.FieldTypeFileOrURL, Label: "Syllabus", Order: 0},
		},
	}
	session, err := runtime.New(def)
	if err != nil {
		t.Fatalf("runtime.New() error = %v", err)
	}

	reader := func(path string) (*runtime.FileRef, error) {
		return runtime.NewFileRef(path, "application/pdf", []byte("pdf")), nil
	}
	driver := &fakeDriver{
		t:       t,
		selects: []int{0}, // paste a link
		inputs:  []string{"https://example.com/syllabus.pdf"},
	}
	filler := NewFiller(session, WithPromptDriver(driver), WithFileReader(reader))
	payload, err := filler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if payload["syllabus"] != "https://example.com/syllabus.pdf" {
		t.Fatalf("syllabus = %v", payload["syllabus"])
	}
}
