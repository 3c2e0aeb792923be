package httpx

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var fastRetry = RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestURL(t *testing.T) {
	tests := []struct {
		base, path string
		q          url.Values
		want       string
	}{
		{"http://h", "a/b", nil, "http://h/a/b"},
		{"http://h/api", "/a/b", nil, "http://h/api/a/b"},
		{"http://h/api/", "a", url.Values{"content": {"report"}}, "http://h/api/a?content=report"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.base)
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.URL(tt.path, tt.q)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestNewClientErrors(t *testing.T) {
	for _, base := range []string{"", "  ", "ftp://h", "://bad"} {
		if _, err := NewClient(base); err == nil {
			t.Errorf("NewClient(%q) succeeded", base)
		}
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization %q", got)
		}
		if got := r.URL.Query().Get("mode"); got != "full" {
			t.Errorf("mode %q", got)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL, WithBearerToken("tok"))
	if err != nil {
		t.Fatal(err)
	}
	body, err := c.Get(context.Background(), "x/y", url.Values{"mode": {"full"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body %s", body)
	}
}

func TestGetRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("done"))
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL, WithRetryPolicy(fastRetry))
	if err != nil {
		t.Fatal(err)
	}
	body, err := c.Get(context.Background(), "p", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "done" || calls.Load() != 3 {
		t.Errorf("body %q after %d calls", body, calls.Load())
	}
}

func TestGetGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c, _ := NewClient(srv.URL, WithRetryPolicy(fastRetry))
	_, err := c.Get(context.Background(), "p", nil)
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadGateway {
		t.Fatalf("err %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("%d calls, want 3", calls.Load())
	}
}

func TestGetNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such node"}`))
	}))
	defer srv.Close()
	c, _ := NewClient(srv.URL, WithRetryPolicy(fastRetry))
	_, err := c.Get(context.Background(), "missing", nil)
	if !IsNotFound(err) {
		t.Fatalf("err %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("404 retried: %d calls", calls.Load())
	}
	if got, want := err.Error(), "http error: status=404 no such node"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetCompressed(t *testing.T) {
	payload := []byte(`{"content":"object"}`)
	gz := &bytes.Buffer{}
	zw := gzip.NewWriter(gz)
	zw.Write(payload)
	zw.Close()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zs := enc.EncodeAll(payload, nil)

	for _, tt := range []struct {
		encoding string
		body     []byte
	}{
		{"gzip", gz.Bytes()},
		{"zstd", zs},
		{"", payload},
	} {
		t.Run(tt.encoding, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Accept-Encoding"); got != acceptEncoding {
					t.Errorf("accept-encoding %q", got)
				}
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				w.Write(tt.body)
			}))
			defer srv.Close()
			c, _ := NewClient(srv.URL)
			got, err := c.Get(context.Background(), "o", nil)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("got %s", got)
			}
		})
	}
}

func TestGetCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	c, _ := NewClient(srv.URL, WithRetryPolicy(RetryPolicy{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Get(ctx, "p", nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err %v", err)
	}
}

func TestBackoff(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, time.Second, 0)
	for attempt, want := range []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
	} {
		if got := b.ForAttempt(attempt); got != want {
			t.Errorf("attempt %d: %v, want %v", attempt, got, want)
		}
	}
	if got := b.ForAttempt(200); got != time.Second {
		t.Errorf("large attempt: %v", got)
	}
	j := NewBackoff(100*time.Millisecond, time.Second, 0.5)
	for i := range 20 {
		if got := j.ForAttempt(0); got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Errorf("jittered delay %d: %v out of range", i, got)
		}
	}
}
