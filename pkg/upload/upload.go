// Package upload posts selected files to the storage endpoint and returns
// their public URLs. A Client satisfies the runtime's Uploader contract so
// file values can be exchanged for links at submit time.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/runtime"
)

// Client uploads files to a storage service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a client posting to baseURL + "/uploads".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("upload: base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Upload streams the file as a multipart form and returns the URL the
// service assigned to it.
func (c *Client) Upload(ctx context.Context, file *runtime.FileRef) (string, error) {
	if file == nil || file.Open == nil {
		return "", fmt.Errorf("upload: no file content")
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open file: %w", err)
	}
	defer src.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("upload: build form: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return "", fmt.Errorf("upload: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload: finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &body)
	if err != nil {
		return "", fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upload request failed",
			zap.String("file", file.Name), zap.Error(err))
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	if payload.URL == "" {
		return "", fmt.Errorf("upload: response carried no url")
	}
	return payload.URL, nil
}

var _ runtime.Uploader = (*Client)(nil)
