package extract

import (
	"context"
	"io"
	"strings"
	"time"

	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
	calls   []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.calls = append(m.calls, url)
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return &mockResponse{statusCode: 404}, nil
}

func (m *mockHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return &mockResponse{statusCode: 405}, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return m.headers[key]
}

// mockCaptionSource is a mock implementation of the CaptionSource interface
type mockCaptionSource struct {
	captionsFunc func(ctx context.Context, videoID string) (string, error)
	calls        int
}

func (m *mockCaptionSource) Captions(ctx context.Context, videoID string) (string, error) {
	m.calls++
	if m.captionsFunc != nil {
		return m.captionsFunc(ctx, videoID)
	}
	return "", interfaces.ErrNoCaptions
}

// mockCache is an in-memory Cache for tests
type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "cache key", ID: key}
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}
