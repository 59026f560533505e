package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeds-app-api/core/domain"
	coreerrors "feeds-app-api/core/errors"
)

const atomDoc = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Example</title></feed>`

func newProxyAPI(t *testing.T, fn func(ctx context.Context, url string) (*domain.Document, error)) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewProxyHandler(&mockFetcher{FetchFunc: fn}, nil).RegisterRoutes(api)
	return api
}

func proxyPath(target string) string {
	return "/proxy?url=" + url.QueryEscape(target)
}

func TestProxy_PassesDocumentThrough(t *testing.T) {
	var fetched string
	api := newProxyAPI(t, func(_ context.Context, u string) (*domain.Document, error) {
		fetched = u
		return &domain.Document{StatusCode: 200, ContentType: "application/atom+xml", Body: []byte(atomDoc)}, nil
	})

	resp := api.Get(proxyPath("https://example.com/atom.xml"))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://example.com/atom.xml", fetched)
	assert.Equal(t, atomDoc, resp.Body.String())
	assert.Equal(t, "application/atom+xml", resp.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=300", resp.Header().Get("Cache-Control"))
	assert.Equal(t, "atom", resp.Header().Get("X-Feed-Type"))
}

func TestProxy_DefaultsContentType(t *testing.T) {
	api := newProxyAPI(t, func(context.Context, string) (*domain.Document, error) {
		return &domain.Document{StatusCode: 200, Body: []byte("not a feed")}, nil
	})

	resp := api.Get(proxyPath("https://example.com/feed"))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/xml", resp.Header().Get("Content-Type"))
	assert.Empty(t, resp.Header().Get("X-Feed-Type"))
}

func TestProxy_BadRequests(t *testing.T) {
	api := newProxyAPI(t, func(context.Context, string) (*domain.Document, error) {
		t.Fatal("fetcher must not be called")
		return nil, nil
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", "/proxy", "Missing url parameter"},
		{"blank", proxyPath("  "), "Missing url parameter"},
		{"wrong scheme", proxyPath("ftp://example.com/feed"), "Invalid url parameter"},
		{"no host", proxyPath("https://"), "Invalid url parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get(tt.path)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, tt.want, decode(t, resp.Body.Bytes())["error"])
		})
	}
}

func TestProxy_UpstreamStatusPassedThrough(t *testing.T) {
	api := newProxyAPI(t, func(context.Context, string) (*domain.Document, error) {
		return &domain.Document{StatusCode: 404, Body: []byte("gone")}, nil
	})

	resp := api.Get(proxyPath("https://example.com/missing"))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Failed to fetch feed: 404", decode(t, resp.Body.Bytes())["error"])
}

func TestProxy_FetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"timeout", &coreerrors.FetchError{Kind: coreerrors.FetchTimeout, URL: "u"}, http.StatusGatewayTimeout},
		{"transport", &coreerrors.FetchError{Kind: coreerrors.FetchTransport, URL: "u"}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newProxyAPI(t, func(context.Context, string) (*domain.Document, error) {
				return nil, tt.err
			})
			resp := api.Get(proxyPath("https://example.com/feed"))
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}
