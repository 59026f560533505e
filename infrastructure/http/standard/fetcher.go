// ABOUTME: Feed document fetcher: feed headers, 15s attempts, two linear-backoff retries
// ABOUTME: Reads the whole body so callers get a Document they can pass through unchanged

package standard

import (
	"context"
	"io"
	"time"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// Feed fetch defaults
const (
	FeedTimeout    = 15 * time.Second
	FeedMaxRetries = 2
	FeedBackoff    = time.Second
	MaxFeedBytes   = 20 << 20
)

// Fetcher implements interfaces.DocumentFetcher
type Fetcher struct {
	client   interfaces.HTTPClient
	maxBytes int64
}

// NewFetcher wraps client. maxBytes <= 0 uses MaxFeedBytes.
func NewFetcher(client interfaces.HTTPClient, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = MaxFeedBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// NewFeedFetcher builds a Fetcher with the feed header set and retry policy
func NewFeedFetcher(timeout time.Duration, retry RetryPolicy, logger interfaces.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = FeedTimeout
	}
	client := New(Options{
		Timeout: timeout,
		Headers: FeedHeaders(),
		Retry:   retry,
		Logger:  logger,
	})
	return NewFetcher(client, 0)
}

// Fetch implements interfaces.DocumentFetcher. Error statuses are returned in the Document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.Document, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), f.maxBytes))
	if err != nil {
		return nil, errors.ClassifyFetch(url, err)
	}

	return &domain.Document{
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header("Content-Type"),
		Body:        body,
	}, nil
}
