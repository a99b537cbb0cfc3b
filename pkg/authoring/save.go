package authoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/formsapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Store persists form definitions. *formsapi.Client satisfies it.
type Store interface {
	CreateForm(ctx context.Context, def schema.FormDefinition) (formsapi.Saved, error)
	UpdateForm(ctx context.Context, id string, def schema.FormDefinition) error
}

// Save persists the current definition through the store, creating the form
// on first save and updating it afterwards. The schema version is bumped on
// success so runtime option caches keyed by version invalidate. A failed save
// leaves the in-memory definition, including unsaved edits, untouched.
func (e *Editor) Save(ctx context.Context, store Store) error {
	if err := e.validateForSave(); err != nil {
		return err
	}

	candidate := e.def.Clone()
	candidate.Version++

	if e.formID == "" {
		saved, err := store.CreateForm(ctx, candidate)
		if err != nil {
			e.notify("Failed to save form: " + err.Error())
			return fmt.Errorf("authoring: create form: %w", err)
		}
		e.formID = saved.ID
		e.slug = saved.Slug
	} else {
		if err := store.UpdateForm(ctx, e.formID, candidate); err != nil {
			e.notify("Failed to save form: " + err.Error())
			return fmt.Errorf("authoring: update form %s: %w", e.formID, err)
		}
	}

	e.def = candidate
	e.dirty = false
	e.notify("Form saved")
	return nil
}

// Publish marks the definition published and saves it.
func (e *Editor) Publish(ctx context.Context, store Store) error {
	prev := e.def.IsPublished
	e.def.IsPublished = true
	if err := e.Save(ctx, store); err != nil {
		e.def.IsPublished = prev
		return err
	}
	return nil
}

func (e *Editor) validateForSave() error {
	if strings.TrimSpace(e.def.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.def.Fields) == 0 {
		return ErrNoFields
	}
	return e.def.Validate()
}
