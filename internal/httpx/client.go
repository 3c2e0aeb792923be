// Package httpx is a small GET client for the data server: base URL
// resolution, default headers, retries with backoff and compressed
// response bodies.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RetryPolicy controls the retry behaviour for transient failures.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Jitter     float64
	// RetryIf overrides the default decision; resp is nil when err is a
	// transport error.
	RetryIf func(resp *http.Response, err error) bool
}

var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 3,
	BaseDelay:  250 * time.Millisecond,
	MaxDelay:   2 * time.Second,
	Jitter:     0.25,
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithBearerToken sets the Authorization header.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.headers.Set("Authorization", "Bearer "+token)
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retryPolicy = policy
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	headers     http.Header
	retryPolicy RetryPolicy
	timeout     time.Duration
	log         *slog.Logger
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("httpx: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("httpx: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("httpx: base URL %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	c := &Client{
		baseURL:     parsed,
		httpClient:  &http.Client{},
		headers:     make(http.Header),
		retryPolicy: DefaultRetryPolicy,
		timeout:     10 * time.Second,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.retryPolicy.MaxRetries = max(c.retryPolicy.MaxRetries, 0)
	if c.retryPolicy.BaseDelay <= 0 {
		c.retryPolicy.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	if c.retryPolicy.MaxDelay <= 0 {
		c.retryPolicy.MaxDelay = DefaultRetryPolicy.MaxDelay
	}
	return c, nil
}

// URL returns the absolute URL of path with query q.
func (c *Client) URL(path string, q url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("httpx: invalid path %q: %w", path, err)
	}
	if len(q) > 0 {
		ref.RawQuery = q.Encode()
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// Get fetches path and returns the decompressed body of the first 2xx
// response.  Failed attempts are retried according to the policy; the
// last failure is returned, as an *HTTPError for error statuses.
func (c *Client) Get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	full, err := c.URL(path, q)
	if err != nil {
		return nil, err
	}
	backoff := NewBackoff(c.retryPolicy.BaseDelay, c.retryPolicy.MaxDelay, c.retryPolicy.Jitter)
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, resp, err := c.once(ctx, full)
		if err == nil {
			return body, nil
		}
		if !c.shouldRetry(attempt, resp, err) {
			return nil, err
		}
		delay := backoff.ForAttempt(attempt)
		c.log.Debug("retrying request", "url", full, "attempt", attempt+1, "delay", delay, "error", err)
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) once(ctx context.Context, full string) ([]byte, *http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header = c.headers.Clone()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("httpx: read body: %w", err)
	}
	body, err := decompress(resp.Header.Get("Content-Encoding"), raw)
	if err != nil {
		return nil, resp, err
	}
	c.log.Debug("response", "url", full, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))
	if resp.StatusCode >= 300 {
		he := &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Header:     resp.Header.Clone(),
		}
		if isJSON(resp.Header.Get("Content-Type")) {
			he.JSON = jsonBody(body)
		}
		return nil, resp, he
	}
	return body, resp, nil
}

func (c *Client) shouldRetry(attempt int, resp *http.Response, err error) bool {
	if attempt >= c.retryPolicy.MaxRetries {
		return false
	}
	if c.retryPolicy.RetryIf != nil {
		return c.retryPolicy.RetryIf(resp, err)
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Retryable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return resp == nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isJSON(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType) == "application/json"
}
