package net

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "headless-renderer/1.0 (compatible; Go)"

// Client fetches documents over HTTP/HTTPS, retrying transient failures.
type Client struct {
	http *retryablehttp.Client
}

// NewClient returns a Client with reasonable timeouts. Retry attempts are
// logged to logger at debug level; a nil logger discards them.
func NewClient(logger *slog.Logger) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = 30 * time.Second
	if logger != nil {
		c.Logger = leveledLogger{logger}
	} else {
		c.Logger = nil
	}
	return &Client{http: c}
}

// Fetch retrieves the content at the given URL.
// Returns the response body, content type, and any error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &ReadError{URL: rawURL, Err: err}
	}

	contentType = resp.Header.Get("Content-Type")
	return body, contentType, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// ReadError is returned when the response body could not be read in full.
type ReadError struct {
	URL string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading response body from %s: %v", e.URL, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// leveledLogger adapts slog to retryablehttp's LeveledLogger. Its own
// chatter is debug-level noise for a CLI.
type leveledLogger struct {
	l *slog.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.l.Warn(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.l.Debug(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.l.Debug(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.l.Debug(msg, kv...) }
