// ABOUTME: HTTP client used to fetch pages and feeds for filtering
// ABOUTME: Retries transient failures with exponential backoff

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"linkoff-engine/core/interfaces"
)

const (
	maxRetries       = 3
	defaultUserAgent = "LinkOff/1.0 (+https://github.com/njelich/LinkOff)"
	acceptHeader     = "text/html,application/xhtml+xml,application/rss+xml,application/atom+xml;q=0.9,*/*;q=0.8"
)

// Client implements the HTTPClient interface on net/http
type Client struct {
	client    *http.Client
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTransport replaces the round tripper, mainly for tests
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.client.Transport = rt }
}

// NewClient creates a client with the given timeout per request
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url. 5xx answers and transport errors are retried; the
// last 5xx answer is returned as an error.
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", acceptHeader)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if resp.StatusCode < 500 {
			return wrap(resp), nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("get %s: %w", url, lastErr)
}

func wrap(resp *http.Response) *response {
	return &response{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}
}

// response implements the Response interface
type response struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

func (r *response) StatusCode() int { return r.statusCode }

func (r *response) Body() io.ReadCloser { return r.body }

func (r *response) Header(key string) string { return r.headers.Get(key) }
