// ABOUTME: Strategy contract shared by the four extraction strategies
// ABOUTME: Strategies never return errors; failures are folded into the result's Error field

package extract

import (
	"context"
	"strings"

	"feeds-app-api/core/domain"
)

// Strategy turns a request into a result of its own kind
type Strategy interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) domain.ExtractionResult
}

// User-facing messages
const (
	msgArticleHTTP      = "Could not fetch article: HTTP %d"
	msgArticleFetch     = "Error fetching article: %v"
	msgArticleEmpty     = "Could not extract the article content. The site may be blocking access or have an unusual structure."
	msgNoVideoID        = "Could not find a video ID in the URL"
	msgNoTranscript     = "No transcript available for this video"
	msgTranscriptFetch  = "Could not fetch transcript: %v"
	msgBlueskyParse     = "Could not parse the Bluesky URL"
	msgBlueskyNoText    = "Could not fetch the Bluesky post"
	msgBlueskyFetch     = "Error fetching Bluesky post: %v"
	msgPodcast          = "Podcast transcripts are not available directly. Check the source website for a transcript."
	msgStrategyPanicked = "Extraction failed unexpectedly: %v"
)

// normalizeText collapses every whitespace run, line breaks included, to a single space and trims the result
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
