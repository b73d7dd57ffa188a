// Package httpx is a thin JSON-over-HTTP helper shared by the two backend
// clients. It owns request encoding, response decoding and the conversion of
// non-2xx responses into StatusError values carrying the raw error body.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// StatusError is returned for any response outside the 2xx range. Body holds
// the raw error body when the backend supplied one.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client wraps an http.Client with JSON encoding and logging.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client. Timeouts beyond the default are the caller's business:
// the transport applies none of the protocol's own.
func New(options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// PostJSON sends body as JSON to rawURL and decodes the 2xx response into out.
// authorization, when non-empty, is sent verbatim as the Authorization header.
func (c *Client) PostJSON(ctx context.Context, rawURL, authorization string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "[httpx.PostJSON] marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "[httpx.PostJSON] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	return c.do(req, out)
}

// GetJSON sends a GET to rawURL with the given query and decodes the 2xx
// response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL, authorization string, query url.Values, out any) error {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "[httpx.GetJSON] build request")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[httpx] %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request complete")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[httpx] read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "[httpx] decode response body")
	}
	return nil
}
