package formsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Saved identifies a persisted form.
type Saved struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// StatusError reports a non-2xx response from the forms API, preserving the
// response body so operators see the server's validation message.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("formsapi: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("formsapi: unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the forms persistence API. The FormDefinition JSON shape is
// the wire contract; no additional envelope is introduced.
type Client struct {
	baseURL   string
	publicURL string
	http      *http.Client
	logger    *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger installs a structured logger. The default logger is a no-op.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPublicBaseURL sets the public origin used by FormURL for shareable
// links. Defaults to the API base URL.
func WithPublicBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.publicURL = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// NewClient constructs a forms API client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("formsapi: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("formsapi: invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.publicURL == "" {
		c.publicURL = c.baseURL
	}
	return c, nil
}

// CreateForm persists a new definition and returns its id and slug.
func (c *Client) CreateForm(ctx context.Context, def schema.FormDefinition) (Saved, error) {
	var saved Saved
	err := c.do(ctx, http.MethodPost, "/forms", def, &saved)
	if err != nil {
		return Saved{}, err
	}
	c.logger.Info("form created", zap.String("id", saved.ID), zap.String("slug", saved.Slug))
	return saved, nil
}

// UpdateForm replaces an existing definition.
func (c *Client) UpdateForm(ctx context.Context, id string, def schema.FormDefinition) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("formsapi: form id is required")
	}
	if err := c.do(ctx, http.MethodPut, "/forms/"+url.PathEscape(id), def, nil); err != nil {
		return err
	}
	c.logger.Info("form updated", zap.String("id", id))
	return nil
}

// GetForm loads a persisted definition.
func (c *Client) GetForm(ctx context.Context, id string) (schema.FormDefinition, error) {
	if strings.TrimSpace(id) == "" {
		return schema.FormDefinition{}, fmt.Errorf("formsapi: form id is required")
	}
	var def schema.FormDefinition
	if err := c.do(ctx, http.MethodGet, "/forms/"+url.PathEscape(id), nil, &def); err != nil {
		return schema.FormDefinition{}, err
	}
	if err := def.Validate(); err != nil {
		return schema.FormDefinition{}, err
	}
	return def, nil
}

// FormURL returns the shareable public URL for a saved form.
func (c *Client) FormURL(slug string) string {
	return c.publicURL + "/f/" + url.PathEscape(slug)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("formsapi: encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("formsapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("forms API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("formsapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("formsapi: decode response: %w", err)
	}
	return nil
}
