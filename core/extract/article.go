// ABOUTME: Article strategy fetches an HTML page and extracts its main prose
// ABOUTME: Uses goquery to drop boilerplate and go-readability for main-content detection

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const maxArticleBytes = 10 << 20

// boilerplate is removed before readability scores the page.
// Forms and headers are left to readability: some sites wrap the whole body in a form.
const boilerplate = "nav, footer, aside, script, style, noscript, iframe, [role=navigation], [aria-hidden=true]"

// ArticleStrategy extracts readable text from arbitrary web pages
type ArticleStrategy struct {
	client interfaces.HTTPClient
	logger interfaces.Logger
}

// NewArticleStrategy creates an article strategy. The client should send browser-like headers.
func NewArticleStrategy(client interfaces.HTTPClient, logger interfaces.Logger) *ArticleStrategy {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &ArticleStrategy{client: client, logger: logger}
}

// Extract implements Strategy
func (s *ArticleStrategy) Extract(ctx context.Context, req domain.ExtractionRequest) domain.ExtractionResult {
	return domain.ArticleResult{Outcome: s.extract(ctx, req.URL, req.Title)}
}

func (s *ArticleStrategy) extract(ctx context.Context, rawURL, fallbackTitle string) domain.Outcome {
	resp, err := s.client.Get(ctx, rawURL)
	if err != nil {
		s.logger.Warn("Article fetch failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return domain.Unavailable(fmt.Sprintf(msgArticleFetch, err))
	}
	defer resp.Body().Close()

	if !isSuccess(resp.StatusCode()) {
		return domain.Unavailable(fmt.Sprintf(msgArticleHTTP, resp.StatusCode()))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxArticleBytes))
	if err != nil {
		return domain.Unavailable(fmt.Sprintf(msgArticleFetch, err))
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return domain.Unavailable(fmt.Sprintf(msgArticleFetch, err))
	}

	text, title, err := ReadableText(body, pageURL)
	if err != nil {
		s.logger.Debug("Readability extraction failed", map[string]interface{}{
			"url":   rawURL,
			"error": err.Error(),
		})
		return domain.Unavailable(msgArticleEmpty)
	}
	if text == "" {
		return domain.Unavailable(msgArticleEmpty)
	}

	if title == "" {
		title = fallbackTitle
	}
	return domain.Extracted(text, title)
}

// ReadableText returns the normalized main text and title of an HTML page
func ReadableText(page []byte, pageURL *url.URL) (text, title string, err error) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(boilerplate).Remove()
	// Search boxes and sign-up forms carry no prose
	doc.Find("form").FilterFunction(func(_ int, form *goquery.Selection) bool {
		return form.Find("p").Length() == 0
	}).Remove()

	article, err := readability.FromDocument(root, pageURL)
	if err != nil {
		return "", "", fmt.Errorf("readability: %w", err)
	}

	return normalizeText(article.TextContent), strings.TrimSpace(article.Title), nil
}
