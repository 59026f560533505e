package interfaces

import (
	"context"
	"io"

	"feeds-app-api/core/domain"
)

// HTTPClient makes outbound HTTP requests.
// Each instance carries its own header set and retry policy.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// A response with an error status is returned, not converted to an error.
	Get(ctx context.Context, url string) (Response, error)

	// Put performs an HTTP PUT request with a JSON body
	Put(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response is a received HTTP response. The caller closes Body.
type Response interface {
	StatusCode() int
	Body() io.ReadCloser
	// Header returns the value of the specified header, or "" when absent
	Header(key string) string
}

// DocumentFetcher retrieves a whole remote document, retrying transient failures
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.Document, error)
}
