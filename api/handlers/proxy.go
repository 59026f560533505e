// ABOUTME: Feed proxy handler for the Huma API
// ABOUTME: GET /proxy fetches a feed document server-side and passes it through unparsed

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"feeds-app-api/core/feed"
	"feeds-app-api/core/interfaces"
)

const (
	defaultFeedContentType = "application/xml"
	proxyCacheControl      = "public, max-age=300"
)

// ProxyHandler relays feed documents so browsers avoid cross-origin restrictions
type ProxyHandler struct {
	fetcher interfaces.DocumentFetcher
	logger  interfaces.Logger
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(fetcher interfaces.DocumentFetcher, logger interfaces.Logger) *ProxyHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &ProxyHandler{fetcher: fetcher, logger: logger}
}

// RegisterRoutes registers the proxy route
func (h *ProxyHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "proxyFeed",
		Method:      http.MethodGet,
		Path:        "/proxy",
		Summary:     "Fetch a feed document",
		Description: "Fetches the feed at url with retries on timeouts and connection failures and returns the body unchanged. Upstream error statuses are passed through.",
		Tags:        []string{"Feeds"},
	}, h.Proxy)
}

// ProxyInput defines the input for the Proxy operation
type ProxyInput struct {
	URL string `query:"url" doc:"Feed URL to fetch" example:"https://simonwillison.net/atom/entries/"`
}

// ProxyOutput is the raw upstream document
type ProxyOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	FeedType     string `header:"X-Feed-Type" doc:"rss, atom or json when recognised"`
	Body         []byte
}

// Proxy handles GET /proxy
func (h *ProxyHandler) Proxy(ctx context.Context, input *ProxyInput) (*ProxyOutput, error) {
	target := strings.TrimSpace(input.URL)
	if target == "" {
		return nil, newError(http.StatusBadRequest, "Missing url parameter")
	}
	if u, err := url.Parse(target); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, newError(http.StatusBadRequest, "Invalid url parameter")
	}

	doc, err := h.fetcher.Fetch(ctx, target)
	if err != nil {
		h.logger.Warn("Feed proxy fetch failed", map[string]interface{}{
			"url":   target,
			"error": err.Error(),
		})
		return nil, toHumaError(err)
	}

	if !doc.OK() {
		return nil, newError(doc.StatusCode, fmt.Sprintf("Failed to fetch feed: %d", doc.StatusCode))
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = defaultFeedContentType
	}

	return &ProxyOutput{
		ContentType:  contentType,
		CacheControl: proxyCacheControl,
		FeedType:     feed.DetectType(doc.Body),
		Body:         doc.Body,
	}, nil
}
