package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeds-app-api/core/domain"
	coreerrors "feeds-app-api/core/errors"
)

func newExtractAPI(t *testing.T, fn func(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error)) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewExtractHandler(&mockExtractor{ExtractFunc: fn}).RegisterRoutes(api)
	return api
}

func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestExtract_Article(t *testing.T) {
	var got domain.ExtractionRequest
	api := newExtractAPI(t, func(_ context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
		got = req
		return domain.ArticleResult{Outcome: domain.Extracted("Body text", "Post title")}, nil
	})

	resp := api.Post("/extract", map[string]any{
		"url":    "  https://example.com/post  ",
		"source": "Simon Willison",
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://example.com/post", got.URL)
	assert.Equal(t, "Simon Willison", got.Source)

	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "article", body["type"])
	assert.Equal(t, "Body text", body["text"])
	assert.Equal(t, "Post title", body["title"])
	assert.Nil(t, body["error"])
}

func TestExtract_UndecodableBody(t *testing.T) {
	called := false
	api := newExtractAPI(t, func(context.Context, domain.ExtractionRequest) (domain.ExtractionResult, error) {
		called = true
		return nil, nil
	})

	resp := api.Post("/extract", "Content-Type: application/json", strings.NewReader(`{"url": "https://example.com/post",`))

	assert.False(t, called)
	assert.GreaterOrEqual(t, resp.Code, 400)
	assert.Less(t, resp.Code, 500)
	assert.NotContains(t, resp.Header().Get("Content-Type"), "problem+json")

	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "title")
	assert.NotContains(t, body, "errors")
}

func TestExtract_PodcastFallback(t *testing.T) {
	api := newExtractAPI(t, func(_ context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
		return domain.PodcastResult{
			Outcome:     domain.Unavailable("Podcast episodes have no transcript"),
			FallbackURL: req.URL,
		}, nil
	})

	resp := api.Post("/extract", map[string]any{"url": "https://pod.example/ep-1"})

	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, "podcast", body["type"])
	assert.Nil(t, body["text"])
	assert.Equal(t, "Podcast episodes have no transcript", body["error"])
	assert.Equal(t, "https://pod.example/ep-1", body["fallbackUrl"])
}

func TestExtract_MissingURL(t *testing.T) {
	called := false
	api := newExtractAPI(t, func(context.Context, domain.ExtractionRequest) (domain.ExtractionResult, error) {
		called = true
		return nil, nil
	})

	resp := api.Post("/extract", map[string]any{"url": "   "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, called)
	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "URL is required", body["error"])
}

func TestExtract_ValidationErrorFromExtractor(t *testing.T) {
	api := newExtractAPI(t, func(context.Context, domain.ExtractionRequest) (domain.ExtractionResult, error) {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "URL is required"}
	})

	resp := api.Post("/extract", map[string]any{"url": "x"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "URL is required", decode(t, resp.Body.Bytes())["error"])
}

func TestExtract_UnexpectedError(t *testing.T) {
	api := newExtractAPI(t, func(context.Context, domain.ExtractionRequest) (domain.ExtractionResult, error) {
		return nil, errors.New("boom")
	})

	resp := api.Post("/extract", map[string]any{"url": "https://example.com"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "boom", body["error"])
}
