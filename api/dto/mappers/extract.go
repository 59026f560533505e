// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Keeps the wire format out of the core packages

package mappers

import (
	"feeds-app-api/api/dto/responses"
	"feeds-app-api/core/domain"
)

// ToExtractResponse converts an extraction result to its wire form
func ToExtractResponse(result domain.ExtractionResult) responses.ExtractResponse {
	o := result.Summary()
	resp := responses.ExtractResponse{
		Success: true,
		Type:    string(result.Kind()),
		Text:    optional(o.Text),
		Title:   optional(o.Title),
		Error:   optional(o.Error),
	}
	if p, ok := result.(domain.PodcastResult); ok {
		resp.FallbackURL = p.FallbackURL
	}
	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
