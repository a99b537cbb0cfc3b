package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// OptionFetcher retrieves the option list for a fetch-sourced field. The
// field's Meta carries the endpoint and key mapping.
type OptionFetcher interface {
	FetchOptions(ctx context.Context, field schema.Field) ([]schema.Option, error)
}

// OptionFetcherFunc adapts a function to the OptionFetcher interface.
type OptionFetcherFunc func(ctx context.Context, field schema.Field) ([]schema.Option, error)

func (f OptionFetcherFunc) FetchOptions(ctx context.Context, field schema.Field) ([]schema.Option, error) {
	return f(ctx, field)
}

type cacheKey struct {
	fieldID string
	version int
}

// OptionCache memoizes fetched option lists per field and schema version.
// Sharing one cache across sessions of the same form avoids refetching on
// every render; bumping the form's Version naturally invalidates entries.
type OptionCache struct {
	mu      sync.Mutex
	entries map[cacheKey][]schema.Option
}

func newOptionCache() *OptionCache {
	return &OptionCache{entries: make(map[cacheKey][]schema.Option)}
}

// NewOptionCache returns an empty cache for use with WithOptionCache.
func NewOptionCache() *OptionCache { return newOptionCache() }

func (c *OptionCache) get(fieldID string, version int) ([]schema.Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	opts, ok := c.entries[cacheKey{fieldID: fieldID, version: version}]
	return opts, ok
}

func (c *OptionCache) put(fieldID string, version int, opts []schema.Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{fieldID: fieldID, version: version}] = opts
}

// FetchOptions loads options for every fetch-sourced field that is not
// already cached. Fetches run in parallel and failures are isolated: a
// failing field keeps an empty option list and records its error, while the
// rest proceed. The call blocks until all fetches finish or ctx is done.
func (s *Session) FetchOptions(ctx context.Context) {
	if s.fetcher == nil {
		return
	}
	var wg sync.WaitGroup
	for _, f := range s.fields {
		if !f.Type.FetchSourced() {
			continue
		}
		s.mu.Lock()
		if s.closed || s.inFlight[f.ID] {
			s.mu.Unlock()
			continue
		}
		if opts, ok := s.cache.get(f.ID, s.def.Version); ok {
			s.options[f.ID] = opts
			delete(s.fetchErr, f.ID)
			s.mu.Unlock()
			continue
		}
		s.inFlight[f.ID] = true
		s.mu.Unlock()

		wg.Add(1)
		go func(field schema.Field) {
			defer wg.Done()
			opts, err := s.fetcher.FetchOptions(ctx, field)
			s.applyFetchResult(field.ID, opts, err)
		}(f)
	}
	wg.Wait()
}

func (s *Session) applyFetchResult(fieldID string, opts []schema.Option, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, fieldID)
	if s.closed {
		return
	}
	if err != nil {
		ferr := &FetchError{FieldID: fieldID, Err: err}
		s.fetchErr[fieldID] = ferr
		s.options[fieldID] = nil
		s.logger.Warn("option fetch failed",
			zap.String("field", fieldID), zap.Error(err))
		s.notify(fmt.Sprintf("Could not load options for %s", s.byID[fieldID].Label))
		return
	}
	delete(s.fetchErr, fieldID)
	s.options[fieldID] = opts
	s.cache.put(fieldID, s.def.Version, opts)
}

// HTTPFetcher fetches options over HTTP. The endpoint comes from the field's
// fetch.endpoint meta entry; each object in the response is mapped to an
// option through the fetch.valueKey and fetch.labelKey entries, which default
// to "value" and "label". Responses may be a bare JSON array or an object
// with a data array.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds an HTTPFetcher. A nil client falls back to
// http.DefaultClient.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

func (h *HTTPFetcher) FetchOptions(ctx context.Context, field schema.Field) ([]schema.Option, error) {
	endpoint := field.Meta[schema.MetaFetchEndpoint]
	if endpoint == "" {
		return nil, fmt.Errorf("field has no %s meta entry", schema.MetaFetchEndpoint)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return decodeOptions(body, field)
}

func decodeOptions(body []byte, field schema.Field) ([]schema.Option, error) {
	valueKey := field.Meta[schema.MetaFetchValueKey]
	if valueKey == "" {
		valueKey = "value"
	}
	labelKey := field.Meta[schema.MetaFetchLabelKey]
	if labelKey == "" {
		labelKey = "label"
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil || envelope.Data == nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		rows = envelope.Data
	}

	opts := make([]schema.Option, 0, len(rows))
	for _, row := range rows {
		value := stringify(row[valueKey])
		if value == "" {
			continue
		}
		label := stringify(row[labelKey])
		if label == "" {
			label = value
		}
		opts = append(opts, schema.Option{ID: value, Value: value, Label: label})
	}
	return opts, nil
}

func stringify(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case float64:
		return fmt.Sprintf("%v", tv)
	case bool:
		return fmt.Sprintf("%v", tv)
	default:
		return ""
	}
}
