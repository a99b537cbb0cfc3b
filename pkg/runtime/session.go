package runtime

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/fieldtype"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Notifier receives user-facing messages emitted by the session, such as
// fetch failures surfaced during rendering.
type Notifier func(msg string)

// PreviewFactory turns a selected file into a preview handle. The returned
// revoke func releases whatever the preview holds; the session calls it when
// the file is replaced, the mode switches or the session closes.
type PreviewFactory func(file *FileRef) (url string, revoke func(), err error)

// Session holds the mutable state of one form being filled out: current
// values, per-field input modes, fetched options and computed-field
// bookkeeping. Mutating methods are safe for a single goroutine; option
// fetches run concurrently and synchronize internally.
type Session struct {
	def    schema.FormDefinition
	fields []schema.Field
	byID   map[string]schema.Field
	order  []string

	specs          map[string]ComputedSpec
	computedActive map[string]bool

	mu       sync.Mutex
	values   map[string]any
	modes    map[string]InputMode
	previews map[string]preview
	options  map[string][]schema.Option
	fetchErr map[string]error
	inFlight map[string]bool
	closed   bool

	cache          *OptionCache
	fetcher        OptionFetcher
	uploader       Uploader
	notify         Notifier
	previewFactory PreviewFactory
	transforms     map[string]TransformFunc
	logger         *zap.Logger
}

type preview struct {
	url    string
	revoke func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithComputedSpecs declares the computed fields for this session, keyed by
// field ID.
func WithComputedSpecs(specs map[string]ComputedSpec) SessionOption {
	return func(s *Session) {
		s.specs = specs
	}
}

// WithOptionFetcher installs the fetcher used for select-fetch and
// multiselect-fetch fields.
func WithOptionFetcher(f OptionFetcher) SessionOption {
	return func(s *Session) {
		s.fetcher = f
	}
}

// WithOptionCache shares a fetch cache across sessions. Entries are keyed by
// field ID and schema version, so bumping the definition's Version invalidates
// them.
func WithOptionCache(c *OptionCache) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithUploader installs the client used to upload file values at submit time.
func WithUploader(u Uploader) SessionOption {
	return func(s *Session) {
		s.uploader = u
	}
}

// WithNotifier installs the user-facing message callback.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithPreviewFactory enables previews for selected files.
func WithPreviewFactory(f PreviewFactory) SessionOption {
	return func(s *Session) {
		s.previewFactory = f
	}
}

// WithTransform registers a submit-time transform for one field.
func WithTransform(fieldID string, fn TransformFunc) SessionOption {
	return func(s *Session) {
		if s.transforms == nil {
			s.transforms = make(map[string]TransformFunc)
		}
		s.transforms[fieldID] = fn
	}
}

// WithLogger installs a structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInitialValues seeds the value map before the first computed resolution.
func WithInitialValues(values map[string]any) SessionOption {
	return func(s *Session) {
		for k, v := range values {
			s.values[k] = v
		}
	}
}

// New builds a session for the definition. Fields with types this build does
// not know degrade to plain text inputs. The definition and any computed
// specs are validated up front, so misconfigured schemas are rejected with a
// DependencyError before the form ever renders.
func New(def schema.FormDefinition, opts ...SessionOption) (*Session, error) {
	def = fieldtype.Normalize(def)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	fields := schema.SortedFields(def)

	s := &Session{
		def:            def,
		fields:         fields,
		byID:           make(map[string]schema.Field, len(fields)),
		order:          make([]string, 0, len(fields)),
		computedActive: make(map[string]bool),
		values:         make(map[string]any),
		modes:          make(map[string]InputMode),
		previews:       make(map[string]preview),
		options:        make(map[string][]schema.Option),
		fetchErr:       make(map[string]error),
		inFlight:       make(map[string]bool),
		cache:          newOptionCache(),
		notify:         func(string) {},
		logger:         zap.NewNop(),
	}
	for _, f := range fields {
		s.byID[f.ID] = f
		s.order = append(s.order, f.ID)
	}
	for _, opt := range opts {
		opt(s)
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.ID] = true
	}
	if err := validateSpecs(s.specs, known); err != nil {
		return nil, err
	}

	for _, f := range fields {
		if f.Type == schema.FieldTypeFileOrURL {
			s.modes[f.ID] = inferMode(s.values[f.ID])
		}
	}
	s.resolveLocked()
	return s, nil
}

// Definition returns a deep copy of the session's form definition.
func (s *Session) Definition() schema.FormDefinition { return s.def.Clone() }

// Fields returns the session's fields in display order.
func (s *Session) Fields() []schema.Field {
	out := make([]schema.Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Value returns the current value for a field.
func (s *Session) Value(fieldID string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[fieldID]
	return v, ok
}

// Values returns a snapshot of the current value map.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// SetValue writes a field value and synchronously re-resolves computed
// fields. Writing a field whose value is currently derived returns
// ErrFieldComputed; writing an unknown field returns ErrUnknownField.
func (s *Session) SetValue(fieldID string, value any) error {
	f, ok := s.byID[fieldID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.computedActive[fieldID] {
		return fmt.Errorf("%w: %q", ErrFieldComputed, fieldID)
	}
	if f.Type == schema.FieldTypeFileOrURL {
		s.setFileOrURLLocked(f, value)
	} else {
		s.storeLocked(fieldID, value)
	}
	s.resolveLocked()
	return nil
}

// storeLocked writes a value, revoking any preview attached to the previous
// one.
func (s *Session) storeLocked(fieldID string, value any) {
	if ref, ok := value.(*FileRef); ok && ref != nil {
		s.revokePreviewLocked(fieldID)
		if s.previewFactory != nil {
			if url, revoke, err := s.previewFactory(ref); err == nil {
				s.previews[fieldID] = preview{url: url, revoke: revoke}
			} else {
				s.logger.Warn("preview creation failed",
					zap.String("field", fieldID), zap.Error(err))
			}
		}
	} else if _, had := s.values[fieldID].(*FileRef); had {
		s.revokePreviewLocked(fieldID)
	}
	if isEmpty(value) {
		delete(s.values, fieldID)
		return
	}
	s.values[fieldID] = value
}

// resolveLocked runs one computed-resolution pass and applies the outcomes.
// Derived values are written only when they differ from the current value,
// and reverted when their dependencies become unsatisfied.
func (s *Session) resolveLocked() {
	if len(s.specs) == 0 {
		return
	}
	for _, res := range ResolveComputed(s.values, s.specs, s.order) {
		// A manually selected file takes precedence over a derived link.
		if s.modes[res.Field] == ModeFile {
			continue
		}
		switch {
		case res.Satisfied:
			cur, _ := stringValue(s.values[res.Field])
			if cur != res.Value {
				if res.Value == "" {
					delete(s.values, res.Field)
				} else {
					s.values[res.Field] = res.Value
				}
			}
			s.computedActive[res.Field] = res.Value != ""
		case s.computedActive[res.Field]:
			delete(s.values, res.Field)
			s.computedActive[res.Field] = false
		}
	}
}

// FieldState describes how a field should currently render.
type FieldState struct {
	// Editable is false while the field's value is derived from satisfied
	// dependencies.
	Editable bool
	// Computed reports whether the field has a computed spec at all.
	Computed bool
	Mode     InputMode
	Options  []schema.Option
	Preview  string
	Fetching bool
	FetchErr error
}

// FieldState reports the render state for one field.
func (s *Session) FieldState(fieldID string) (FieldState, error) {
	f, ok := s.byID[fieldID]
	if !ok {
		return FieldState{}, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, hasSpec := s.specs[fieldID]
	st := FieldState{
		Editable: !s.computedActive[fieldID],
		Computed: hasSpec,
		Mode:     s.modes[fieldID],
		Preview:  s.previews[fieldID].url,
		Fetching: s.inFlight[fieldID],
		FetchErr: s.fetchErr[fieldID],
	}
	if f.Type.FetchSourced() {
		st.Options = append([]schema.Option(nil), s.options[fieldID]...)
	} else {
		st.Options = append([]schema.Option(nil), f.Options...)
	}
	return st, nil
}

// Close releases session resources, revoking all outstanding previews.
// Fetches that complete after Close are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.previews {
		s.revokePreviewLocked(id)
	}
	s.closed = true
}

func (s *Session) revokePreviewLocked(fieldID string) {
	if p, ok := s.previews[fieldID]; ok {
		if p.revoke != nil {
			p.revoke()
		}
		delete(s.previews, fieldID)
	}
}
