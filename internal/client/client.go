// Package client is the HTTP data-access layer for the Data Alchemist
// backend. It exposes one service facade per resource family (data, rules,
// upload, AI, system) over a shared transport with three timeout classes and
// uniform response unwrapping.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alchemist/internal/notify"
)

const (
	shortTimeoutDefault   = 10 * time.Second
	defaultTimeoutDefault = 30 * time.Second
	longTimeoutDefault    = 120 * time.Second
)

// defaultQuietPaths are URL substrings whose failures are expected during
// normal operation (polling before anything is uploaded, AI endpoints
// reporting "no data yet") and must not produce a notification per request.
var defaultQuietPaths = []string{"/upload/status", "/data/", "/ai/"}

// Client holds the transport state shared by all service facades: three HTTP
// clients differing only in timeout, the bearer token, and the error-to-
// notification mapping.
type Client struct {
	baseURL  string
	token    string
	notifier notify.Notifier
	logger   *zap.Logger
	quiet    []string

	shortTimeout   time.Duration
	defaultTimeout time.Duration
	longTimeout    time.Duration

	short *http.Client // health checks, status polls
	std   *http.Client // data and rule traffic
	long  *http.Client // AI endpoints
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithNotifier sets the notification sink for request failures.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeouts overrides the short/default/long timeouts. Zero values keep
// the defaults.
func WithTimeouts(short, def, long time.Duration) Option {
	return func(c *Client) {
		if short > 0 {
			c.shortTimeout = short
		}
		if def > 0 {
			c.defaultTimeout = def
		}
		if long > 0 {
			c.longTimeout = long
		}
	}
}

// WithQuietPaths replaces the default notification suppression list.
func WithQuietPaths(paths []string) Option {
	return func(c *Client) { c.quiet = paths }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		notifier:       notify.Silent{},
		logger:         zap.NewNop(),
		quiet:          defaultQuietPaths,
		shortTimeout:   shortTimeoutDefault,
		defaultTimeout: defaultTimeoutDefault,
		longTimeout:    longTimeoutDefault,
	}
	for _, opt := range opts {
		opt(c)
	}

	rt := &headerTransport{token: c.token, base: http.DefaultTransport}
	c.short = &http.Client{Timeout: c.shortTimeout, Transport: rt}
	c.std = &http.Client{Timeout: c.defaultTimeout, Transport: rt}
	c.long = &http.Client{Timeout: c.longTimeout, Transport: rt}
	return c
}

// Data returns the entity data facade.
func (c *Client) Data() *DataService { return &DataService{c: c} }

// Rules returns the rule configuration facade.
func (c *Client) Rules() *RuleService { return &RuleService{c: c} }

// Upload returns the spreadsheet upload facade.
func (c *Client) Upload() *UploadService { return &UploadService{c: c} }

// AI returns the AI facade (long-timeout transport).
func (c *Client) AI() *AIService { return &AIService{c: c} }

// System returns the health/validation facade.
func (c *Client) System() *SystemService { return &SystemService{c: c} }

// headerTransport is the request-side interceptor: bearer token and a
// per-request correlation ID on every outgoing call.
type headerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.token != "" {
		r.Header.Set("Authorization", "Bearer "+t.token)
	}
	if r.Header.Get("X-Request-ID") == "" {
		r.Header.Set("X-Request-ID", uuid.NewString())
	}
	return t.base.RoundTrip(r)
}

// do issues a JSON request and decodes the response envelope into out.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal request: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s %s: create request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, err := c.roundTrip(hc, req)
	if err != nil {
		return err
	}

	if err := decodeEnvelope(data, out); err != nil {
		var ae *APIError
		if errors.As(err, &ae) {
			ae.StatusCode = http.StatusOK
			ae.Method = method
			ae.Path = path
			c.report(method, path, http.StatusOK, ae.Message)
			return ae
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// doRaw issues a JSON request and returns the raw response body. Used where
// the caller runs its own adapter (pagination, AI sibling fields).
func (c *Client) doRaw(ctx context.Context, hc *http.Client, method, path string, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: marshal request: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("%s %s: create request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(hc, req)
}

// roundTrip is the response-side interceptor: it reads the body, maps any
// failure to one human-readable message, notifies unless the path is quiet,
// and always propagates the error so callers can branch on the status code.
func (c *Client) roundTrip(hc *http.Client, req *http.Request) ([]byte, error) {
	method, path := req.Method, req.URL.Path

	resp, err := hc.Do(req)
	if err != nil {
		c.report(method, path, 0, err.Error())
		return nil, &APIError{Method: method, Path: path, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.report(method, path, resp.StatusCode, err.Error())
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(data, resp.Status)
		c.report(method, path, resp.StatusCode, msg)
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Message: msg}
	}
	return data, nil
}

// download streams a binary response (export blobs) into w.
func (c *Client) download(ctx context.Context, hc *http.Client, method, path string, body any, w io.Writer) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: marshal request: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s %s: create request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.report(method, path, 0, err.Error())
		return &APIError{Method: method, Path: path, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		msg := errorMessage(data, resp.Status)
		c.report(method, path, resp.StatusCode, msg)
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Message: msg}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("%s %s: write export: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts the human-readable message from an error body,
// preferring a server-supplied message/error field and falling back to the
// HTTP status text.
func errorMessage(body []byte, statusText string) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	return statusText
}

// report logs every failure and notifies unless the path is on the quiet
// list.
func (c *Client) report(method, path string, status int, msg string) {
	c.logger.Debug("request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("message", msg))
	if c.isQuiet(path) {
		return
	}
	c.notifier.Notify(notify.LevelError, msg)
}

func (c *Client) isQuiet(path string) bool {
	for _, q := range c.quiet {
		if strings.Contains(path, q) {
			return true
		}
	}
	return false
}
