// Package api is the HTTP client for the notification-log backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CSRFCookie is the cookie the backend stores its CSRF token in.
	CSRFCookie = "csrftoken"
	// CSRFHeader carries the token back on writes.
	CSRFHeader = "X-CSRFToken"
	// RequestIDHeader tags each request for correlation with server logs.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the backend. One client holds one cookie jar, so every
// request it makes shares the same credentials.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar is replaced
// with a fresh cookie jar when nil. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient constructs a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// NormalizeBaseURL validates a backend URL and strips any trailing slash.
func NormalizeBaseURL(raw string) (*url.URL, error) {
	value := strings.TrimRight(strings.TrimSpace(raw), "/")
	if value == "" {
		return nil, fmt.Errorf("base url cannot be empty")
	}
	u, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must start with http:// or https://")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url has no host")
	}
	return u, nil
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// FetchJSON GETs path and decodes the JSON body into out. Any transport
// failure, non-2xx status or undecodable body is reported as a LoadError.
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	resp, data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &LoadError{Path: path, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &LoadError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// PostJSON POSTs payload as JSON with the CSRF token from the cookie jar.
// An undecodable response body is treated as empty. A non-2xx response
// yields an APIError carrying the server's error text.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	c.EnsureCSRF(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	resp, data, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}

	var errBody errorPayload
	_ = json.Unmarshal(data, &errBody)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errBody.Error
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil && len(data) > 0 {
		_ = json.Unmarshal(data, out)
	}
	return nil
}

// EnsureCSRF fetches the dashboard root when the jar holds no CSRF token,
// which makes the backend set one. Failures are logged and otherwise
// ignored; the write that follows will be rejected by the server instead.
func (c *Client) EnsureCSRF(ctx context.Context) {
	if c.csrfToken() != "" {
		return
	}
	resp, _, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		c.log.Warn("csrf bootstrap failed", zap.Error(err))
		return
	}
	if c.csrfToken() == "" {
		c.log.Warn("backend did not set a csrf cookie", zap.Int("status", resp.StatusCode))
	}
}

func (c *Client) csrfToken() string {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == CSRFCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, nil, err
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(CSRFHeader, c.csrfToken())
		// Django rejects HTTPS writes without a same-origin Referer.
		req.Header.Set("Referer", c.baseURL.String()+"/")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	return resp, data, nil
}
