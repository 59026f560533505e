// ABOUTME: Default sources handler for the Huma API
// ABOUTME: GET /sources lists the feeds a fresh client subscribes to

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"feeds-app-api/api/dto/mappers"
	"feeds-app-api/api/dto/responses"
	"feeds-app-api/core/feed"
)

// SourcesHandler serves the default feed list
type SourcesHandler struct{}

// NewSourcesHandler creates a new sources handler
func NewSourcesHandler() *SourcesHandler {
	return &SourcesHandler{}
}

// RegisterRoutes registers the sources route
func (h *SourcesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listDefaultSources",
		Method:      http.MethodGet,
		Path:        "/sources",
		Summary:     "List default feed sources",
		Tags:        []string{"Feeds"},
	}, h.List)
}

// SourcesOutput defines the output for the List operation
type SourcesOutput struct {
	Body struct {
		Sources []responses.Source `json:"sources"`
	}
}

// List handles GET /sources
func (h *SourcesHandler) List(_ context.Context, _ *struct{}) (*SourcesOutput, error) {
	out := &SourcesOutput{}
	out.Body.Sources = mappers.ToSources(feed.DefaultSources())
	return out, nil
}
