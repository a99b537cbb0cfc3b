package languages

import "net/http"

// EmptySearchMode controls what an empty query returns.
type EmptySearchMode string

const (
	// EmptySearchNone returns no results for an empty query.
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchTop returns the first entries of the catalogue.
	EmptySearchTop EmptySearchMode = "top"
)

// GuardFunc can reject a request before it reaches the handler logic.
type GuardFunc func(r *http.Request) error

// Options configure the handler and search behavior.
type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc

	// Languages replaces the embedded catalogue when non-nil.
	Languages []Language
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/languages",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
	}
}

// NewOptions builds Options from defaults plus overrides, clamping anything
// out of range.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/languages"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Languages != nil {
		opts.Languages = append([]Language{}, opts.Languages...)
	}
	return opts
}

// WithRoutePath overrides the route path the component mounts under.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithSearchParam overrides the query parameter name.
func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// WithLimitParam overrides the limit parameter name.
func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

// WithDefaultLimit overrides the limit applied when none is requested.
func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

// WithMaxLimit caps the requestable limit.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

// WithEmptySearchMode controls empty-query behavior.
func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithLanguages replaces the embedded catalogue.
func WithLanguages(langs []Language) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if langs == nil {
			o.Languages = nil
			return
		}
		o.Languages = append([]Language{}, langs...)
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
