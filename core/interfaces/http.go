// ABOUTME: HTTP client contract used to download pages and feeds
// ABOUTME: Keeps the core free of net/http so tests can serve canned bodies

package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches remote pages and feeds.
type HTTPClient interface {
	// Get performs a GET request. Implementations may retry transient
	// failures but must stop once ctx is done.
	Get(ctx context.Context, url string) (Response, error)
}

// Response is the part of an HTTP response the engine reads.
type Response interface {
	StatusCode() int

	// Body must be closed by the caller.
	Body() io.ReadCloser

	// Header returns the value of a header, "" when absent.
	Header(key string) string
}
