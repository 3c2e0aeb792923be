package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/signadot/datatree/internal/httpx"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/node"
)

// Mode selects what a request for a node path returns.
type Mode int

const (
	// ModeReport asks for the node's report: its metadata and, for a
	// branch, its children.
	ModeReport Mode = iota
	// ModeSummary asks for the leaf's attribute without bulk data.
	ModeSummary
	// ModeFull asks for the leaf's complete attribute.
	ModeFull
)

func (m Mode) String() string {
	d, err := m.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeReport:
		return []byte("report"), nil
	case ModeSummary:
		return []byte("summary"), nil
	case ModeFull:
		return []byte("full"), nil
	}
	return nil, fmt.Errorf("<err: %d is not a mode>", m)
}

// Query returns the request parameters selecting m.
func (m Mode) Query() url.Values {
	switch m {
	case ModeSummary:
		return url.Values{"content": {node.ContentObject}, "mode": {node.ModeSummary}}
	case ModeFull:
		return url.Values{"content": {node.ContentObject}, "mode": {node.ModeFull}}
	}
	return url.Values{"content": {node.ContentReport}}
}

// Fetcher retrieves the JSON document for a node path.
type Fetcher interface {
	FetchJSON(ctx context.Context, path string, mode Mode) (*ir.Node, error)
}

// HTTPOption configures the fetcher made by NewHTTP.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	opts []httpx.Option
}

func WithToken(token string) HTTPOption {
	return func(c *httpConfig) { c.opts = append(c.opts, httpx.WithBearerToken(token)) }
}

func WithTimeout(d time.Duration) HTTPOption {
	return func(c *httpConfig) { c.opts = append(c.opts, httpx.WithTimeout(d)) }
}

// WithRetries sets the number of retries of transient failures.
func WithRetries(n int) HTTPOption {
	return func(c *httpConfig) {
		p := httpx.DefaultRetryPolicy
		p.MaxRetries = n
		c.opts = append(c.opts, httpx.WithRetryPolicy(p))
	}
}

func WithHTTPClient(h *http.Client) HTTPOption {
	return func(c *httpConfig) { c.opts = append(c.opts, httpx.WithHTTPClient(h)) }
}

func WithHTTPLogger(l *slog.Logger) HTTPOption {
	return func(c *httpConfig) { c.opts = append(c.opts, httpx.WithLogger(l)) }
}

type httpFetcher struct {
	c *httpx.Client
}

// NewHTTP returns a Fetcher issuing GET requests for
//
//	{baseURL}/{path}?content=report
//	{baseURL}/{path}?content=object&mode=summary|full
func NewHTTP(baseURL string, opts ...HTTPOption) (Fetcher, error) {
	cfg := &httpConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	c, err := httpx.NewClient(baseURL, cfg.opts...)
	if err != nil {
		return nil, err
	}
	return &httpFetcher{c: c}, nil
}

func (f *httpFetcher) FetchJSON(ctx context.Context, path string, mode Mode) (*ir.Node, error) {
	body, err := f.c.Get(ctx, path, mode.Query())
	if err != nil {
		return nil, err
	}
	doc, err := ir.FromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", mode, path, err)
	}
	return doc, nil
}
