package extract

import (
	"context"

	"feeds-app-api/core/domain"
)

// PodcastStrategy has no transcript source; it points the reader back at the episode
type PodcastStrategy struct{}

// Extract implements Strategy
func (PodcastStrategy) Extract(_ context.Context, req domain.ExtractionRequest) domain.ExtractionResult {
	return domain.PodcastResult{
		Outcome:     domain.Unavailable(msgPodcast),
		FallbackURL: req.URL,
	}
}
