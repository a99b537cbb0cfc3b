// Package tui fills form sessions interactively from the terminal. The
// prompt flow follows the schema's field order, skips auto-computed fields
// and hands the collected values to the session for validation and
// submission.
package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formkit/pkg/runtime"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// FileReader loads a local path into a file value. Swappable for tests.
type FileReader func(path string) (*runtime.FileRef, error)

// Filler walks a session's fields and prompts for each one.
type Filler struct {
	session  *runtime.Session
	driver   PromptDriver
	readFile FileReader
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the default survey-backed driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithFileReader overrides how file paths become file values.
func WithFileReader(reader FileReader) Option {
	return func(f *Filler) {
		if reader != nil {
			f.readFile = reader
		}
	}
}

// NewFiller builds a Filler for the session.
func NewFiller(session *runtime.Session, opts ...Option) *Filler {
	f := &Filler{
		session:  session,
		driver:   NewSurveyDriver(),
		readFile: readLocalFile,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run fetches remote options, prompts for every field in order and submits
// the session, returning the payload.
func (f *Filler) Run(ctx context.Context) (map[string]any, error) {
	f.session.FetchOptions(ctx)

	for _, field := range f.session.Fields() {
		if err := f.promptField(ctx, field); err != nil {
			return nil, err
		}
	}
	return f.session.Submit(ctx)
}

func (f *Filler) promptField(ctx context.Context, field schema.Field) error {
	state, err := f.session.FieldState(field.ID)
	if err != nil {
		return err
	}
	if !state.Editable {
		value, _ := f.session.Value(field.ID)
		return f.driver.Info(ctx, fmt.Sprintf("%s: %v (auto-filled)", field.Label, value))
	}

	switch field.Type {
	case schema.FieldTypeTextarea:
		return f.promptTextArea(ctx, field)
	case schema.FieldTypeSelect, schema.FieldTypeLanguage, schema.FieldTypeProficiency,
		schema.FieldTypeEducation, schema.FieldTypeTimePreference:
		return f.promptSelect(ctx, field, field.Options)
	case schema.FieldTypeCheckbox:
		return f.promptMultiSelect(ctx, field, field.Options)
	case schema.FieldTypeSelectFetch:
		return f.promptFetched(ctx, field, state, false)
	case schema.FieldTypeMultiFetch:
		return f.promptFetched(ctx, field, state, true)
	case schema.FieldTypeFile:
		return f.promptFile(ctx, field)
	case schema.FieldTypeFileOrURL:
		return f.promptFileOrURL(ctx, field)
	default:
		return f.promptInput(ctx, field)
	}
}

func (f *Filler) promptInput(ctx context.Context, field schema.Field) error {
	value, err := f.driver.Input(ctx, InputConfig{
		Message:     promptMessage(field),
		Help:        field.HelpText,
		Placeholder: field.Placeholder,
	})
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	return f.session.SetValue(field.ID, value)
}

func (f *Filler) promptTextArea(ctx context.Context, field schema.Field) error {
	value, err := f.driver.TextArea(ctx, TextAreaConfig{
		Message: promptMessage(field),
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	return f.session.SetValue(field.ID, value)
}

const skipLabel = "(skip)"

func (f *Filler) promptSelect(ctx context.Context, field schema.Field, options []schema.Option) error {
	labels := make([]string, 0, len(options)+1)
	if !field.Required {
		labels = append(labels, skipLabel)
	}
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message: promptMessage(field),
		Options: labels,
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	if idx < 0 || labels[idx] == skipLabel {
		return nil
	}
	if !field.Required {
		idx--
	}
	return f.session.SetValue(field.ID, options[idx].Value)
}

func (f *Filler) promptMultiSelect(ctx context.Context, field schema.Field, options []schema.Option) error {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message: promptMessage(field),
		Options: labels,
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		return nil
	}
	values := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			values = append(values, options[idx].Value)
		}
	}
	return f.session.SetValue(field.ID, values)
}

// promptFetched falls back to free-form input when the option fetch failed
// or came back empty, so one dead endpoint never blocks the whole form.
func (f *Filler) promptFetched(ctx context.Context, field schema.Field, state runtime.FieldState, multi bool) error {
	if state.FetchErr != nil {
		if err := f.driver.Info(ctx, fmt.Sprintf("%s: options unavailable, enter a value manually", field.Label)); err != nil {
			return err
		}
	}
	if len(state.Options) == 0 {
		return f.promptInput(ctx, field)
	}
	if multi {
		return f.promptMultiSelect(ctx, field, state.Options)
	}
	return f.promptSelect(ctx, field, state.Options)
}

func (f *Filler) promptFile(ctx context.Context, field schema.Field) error {
	path, err := f.driver.Input(ctx, InputConfig{
		Message: promptMessage(field) + " (path)",
		Help:    field.HelpText,
	})
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	ref, err := f.readFile(path)
	if err != nil {
		return fmt.Errorf("tui: read %q: %w", path, err)
	}
	return f.session.SetValue(field.ID, ref)
}

func (f *Filler) promptFileOrURL(ctx context.Context, field schema.Field) error {
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message: promptMessage(field),
		Options: []string{"Paste a link", "Upload a file", skipLabel},
	})
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		if err := f.session.SwitchMode(field.ID, runtime.ModeURL); err != nil {
			return err
		}
		return f.promptInput(ctx, field)
	case 1:
		if err := f.session.SwitchMode(field.ID, runtime.ModeFile); err != nil {
			return err
		}
		return f.promptFile(ctx, field)
	default:
		return nil
	}
}

func promptMessage(field schema.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func readLocalFile(path string) (*runtime.FileRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return runtime.NewFileRef(filepath.Base(path), contentType, data), nil
}
