// ABOUTME: Extraction handler for the Huma API
// ABOUTME: POST /extract classifies a URL and returns its plain text or a user-facing reason

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"feeds-app-api/api/dto/mappers"
	"feeds-app-api/api/dto/requests"
	"feeds-app-api/api/dto/responses"
	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// ExtractHandler handles content extraction requests
type ExtractHandler struct {
	extractor interfaces.ContentExtractor
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extractor interfaces.ContentExtractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// RegisterRoutes registers all extraction routes
func (h *ExtractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractContent",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Extract plain text from a content URL",
		Description: "Classifies the URL as article, YouTube video, Bluesky post or podcast episode and extracts its text. Extraction failures are reported in the error field with a 200 status.",
		Tags:        []string{"Extraction"},
	}, h.Extract)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract handles POST /extract
func (h *ExtractHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	req := domain.ExtractionRequest{
		URL:    strings.TrimSpace(input.Body.URL),
		Source: input.Body.Source,
		Title:  input.Body.Title,
	}
	if req.URL == "" {
		return nil, extractionError(http.StatusBadRequest, "URL is required")
	}

	result, err := h.extractor.Extract(ctx, req)
	if err != nil {
		if errors.IsValidation(err) {
			return nil, extractionError(http.StatusBadRequest, validationMessage(err))
		}
		return nil, extractionError(http.StatusInternalServerError, err.Error())
	}

	return &ExtractOutput{Body: mappers.ToExtractResponse(result)}, nil
}
