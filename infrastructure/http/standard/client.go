// ABOUTME: Standard HTTP client implementation with header sets, timeout and typed retry
// ABOUTME: Only timeouts and transport failures are retried, with linear backoff; statuses pass through

package standard

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// DefaultUserAgent identifies API calls made by this service
const DefaultUserAgent = "FeedsApp/1.0 (+https://feeds.app)"

// RetryPolicy controls how failed attempts are repeated.
// The wait before retry n (1-based) is Backoff * n.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Options configures a Client
type Options struct {
	// Timeout bounds each attempt, including reading the body
	Timeout time.Duration

	// Headers are set on every request
	Headers map[string]string

	Retry RetryPolicy

	// Transport overrides http.DefaultTransport
	Transport http.RoundTripper

	Logger interfaces.Logger
}

// BrowserHeaders is the header set used to fetch web pages that reject bots
func BrowserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Cache-Control":   "no-cache",
		"Pragma":          "no-cache",
	}
}

// FeedHeaders is the header set used to fetch feed documents
func FeedHeaders() map[string]string {
	return map[string]string{
		"User-Agent": DefaultUserAgent,
		"Accept":     "application/rss+xml, application/atom+xml, application/xml, text/xml, */*",
	}
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client  *http.Client
	headers map[string]string
	retry   RetryPolicy
	logger  interfaces.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates a client from opts. Redirects are followed.
func New(opts Options) *StandardHTTPClient {
	logger := opts.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		headers: headers,
		retry:   opts.Retry,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// NewStandardHTTPClient creates an API client with the service user agent and no retries
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return New(Options{
		Timeout: timeout,
		Headers: map[string]string{"User-Agent": DefaultUserAgent},
	})
}

// NewBrowserClient creates a client for web pages: browser headers, no retries
func NewBrowserClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	return New(Options{Timeout: timeout, Headers: BrowserHeaders(), Logger: logger})
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Put performs an HTTP PUT request with a JSON body
func (c *StandardHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return c.doWithBody(ctx, http.MethodPut, url, body)
}

func (c *StandardHTTPClient) doWithBody(ctx context.Context, method, url string, body io.Reader) (interfaces.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, errors.ClassifyFetch(url, err)
		}
	}
	return c.do(ctx, method, url, payload)
}

// do sends the request, retrying retryable failures. The body is replayed on each attempt.
func (c *StandardHTTPClient) do(ctx context.Context, method, url string, payload []byte) (interfaces.Response, error) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.retry.Backoff*time.Duration(attempt)); err != nil {
				return nil, errors.ClassifyFetch(url, err)
			}
		}

		resp, err := c.send(ctx, method, url, payload)
		if err == nil {
			return resp, nil
		}

		fetchErr := errors.ClassifyFetch(url, err)
		if !errors.IsRetryable(fetchErr) || attempt >= c.retry.MaxRetries {
			return nil, fetchErr
		}
		c.logger.Debug("Retrying request", map[string]interface{}{
			"url":     url,
			"attempt": attempt + 1,
			"kind":    string(fetchErr.Kind),
		})
	}
}

func (c *StandardHTTPClient) send(ctx context.Context, method, url string, payload []byte) (*httpResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
