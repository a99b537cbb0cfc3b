package runtime

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/fieldtype"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// TransformFunc rewrites one field's value during submission. It receives
// the field's current value and a read-only snapshot of the whole value map.
type TransformFunc func(value any, values map[string]any) any

// Uploader stores a selected file and returns its public URL. File values
// are exchanged for URLs at submit time so the payload is pure JSON.
type Uploader interface {
	Upload(ctx context.Context, file *FileRef) (string, error)
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(ctx context.Context, file *FileRef) (string, error)

func (f UploaderFunc) Upload(ctx context.Context, file *FileRef) (string, error) {
	return f(ctx, file)
}

var validate = validator.New()

// Submit assembles the submission payload: per-field transforms run first,
// then required and format validation, then file values are exchanged for
// URLs through the uploader. The session's values are left untouched, so a
// failed submit keeps the user's input intact.
func (s *Session) Submit(ctx context.Context) (map[string]any, error) {
	s.mu.Lock()
	values := cloneValues(s.values)
	fetched := make(map[string][]schema.Option, len(s.options))
	for id, opts := range s.options {
		fetched[id] = opts
	}
	s.mu.Unlock()

	payload := make(map[string]any, len(values))
	verr := &ValidationError{}

	for _, f := range s.fields {
		v := values[f.ID]
		if fn, ok := s.transforms[f.ID]; ok {
			v = fn(v, values)
		} else if str, ok := stringValue(v); ok {
			v = strings.TrimSpace(str)
		}

		if isEmpty(v) {
			if f.Required {
				verr.add(f.ID, "is required")
			}
			continue
		}
		checkFormat(f, v, fetched[f.ID], verr)
		if ref, ok := v.(*FileRef); ok && ref != nil {
			checkUpload(f, ref, verr)
		}
		payload[f.ID] = v
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	for _, f := range s.fields {
		ref, ok := payload[f.ID].(*FileRef)
		if !ok || ref == nil {
			continue
		}
		if s.uploader == nil {
			return nil, fmt.Errorf("runtime: field %q holds a file but no uploader is configured", f.ID)
		}
		url, err := s.uploader.Upload(ctx, ref)
		if err != nil {
			s.notify(fmt.Sprintf("Upload failed for %s", f.Label))
			return nil, fmt.Errorf("runtime: upload file for field %q: %w", f.ID, err)
		}
		payload[f.ID] = url
	}
	return payload, nil
}

func checkFormat(f schema.Field, v any, fetched []schema.Option, verr *ValidationError) {
	str, isString := stringValue(v)
	switch f.Type {
	case schema.FieldTypeEmail:
		if isString && validate.Var(str, "email") != nil {
			verr.add(f.ID, "must be a valid email address")
		}
	case schema.FieldTypeFileOrURL:
		if isString && validate.Var(str, "url") != nil {
			verr.add(f.ID, "must be a valid URL")
		}
	case schema.FieldTypeNumber:
		if isString && validate.Var(str, "numeric") != nil {
			verr.add(f.ID, "must be a number")
		}
	}
	if f.Type.ChoiceLike() && len(f.Options) > 0 {
		checkChoice(f, v, f.Options, verr)
	}
	if f.Type.FetchSourced() && len(fetched) > 0 {
		checkChoice(f, v, fetched, verr)
	}
}

// checkUpload enforces the field's upload metadata on a selected file: the
// extension set derived from the upload purpose and the size cap in MB.
func checkUpload(f schema.Field, ref *FileRef, verr *ValidationError) {
	purpose := fieldtype.UploadPurpose(f.Meta[schema.MetaUploadPurpose])
	if purpose != "" && purpose != fieldtype.PurposeAny {
		exts := fieldtype.AcceptedExtensions(purpose)
		ext := strings.ToLower(filepath.Ext(ref.Name))
		ok := false
		for _, allowed := range exts {
			if ext == allowed {
				ok = true
				break
			}
		}
		if !ok {
			verr.add(f.ID, fmt.Sprintf("must be a %s file", strings.Join(exts, ", ")))
		}
	}
	if raw := f.Meta[schema.MetaUploadMaxSizeMB]; raw != "" {
		if limit, err := strconv.ParseFloat(raw, 64); err == nil && limit > 0 {
			if float64(ref.Size) > limit*1024*1024 {
				verr.add(f.ID, fmt.Sprintf("must be at most %s MB", raw))
			}
		}
	}
}

func checkChoice(f schema.Field, v any, opts []schema.Option, verr *ValidationError) {
	allowed := make(map[string]bool, len(opts))
	for _, o := range opts {
		allowed[o.Value] = true
	}
	switch tv := v.(type) {
	case string:
		if !allowed[tv] {
			verr.add(f.ID, fmt.Sprintf("%q is not one of the available options", tv))
		}
	case []string:
		for _, item := range tv {
			if !allowed[item] {
				verr.add(f.ID, fmt.Sprintf("%q is not one of the available options", item))
			}
		}
	}
}
