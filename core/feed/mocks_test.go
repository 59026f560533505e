package feed

import (
	"context"

	"feeds-app-api/core/domain"
)

// mockFetcher is a mock implementation of the DocumentFetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) (*domain.Document, error)
	calls     []string
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.Document, error) {
	m.calls = append(m.calls, url)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return &domain.Document{StatusCode: 200, ContentType: "application/rss+xml", Body: []byte("<rss/>")}, nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}
