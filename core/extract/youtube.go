// ABOUTME: YouTube strategy turns a video's captions into transcript text
// ABOUTME: Caption retrieval is delegated to a CaptionSource; parsing to the transcript package

package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
	"feeds-app-api/core/transcript"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

// VideoID returns the 11-character video ID in a YouTube URL, or "" when none is found
func VideoID(rawURL string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// YouTubeStrategy extracts transcripts for YouTube videos
type YouTubeStrategy struct {
	captions interfaces.CaptionSource
	logger   interfaces.Logger
}

// NewYouTubeStrategy creates a YouTube strategy
func NewYouTubeStrategy(captions interfaces.CaptionSource, logger interfaces.Logger) *YouTubeStrategy {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &YouTubeStrategy{captions: captions, logger: logger}
}

// Extract implements Strategy
func (s *YouTubeStrategy) Extract(ctx context.Context, req domain.ExtractionRequest) domain.ExtractionResult {
	id := VideoID(req.URL)
	if id == "" {
		return domain.YouTubeResult{Outcome: domain.Unavailable(msgNoVideoID)}
	}

	raw, err := s.captions.Captions(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoCaptions) {
			return domain.YouTubeResult{Outcome: domain.Unavailable(msgNoTranscript), VideoID: id}
		}
		s.logger.Warn("Caption download failed", map[string]interface{}{
			"video_id": id,
			"error":    err.Error(),
		})
		return domain.YouTubeResult{Outcome: domain.Unavailable(fmt.Sprintf(msgTranscriptFetch, err)), VideoID: id}
	}

	text := transcript.Text(raw)
	if text == "" {
		return domain.YouTubeResult{Outcome: domain.Unavailable(msgNoTranscript), VideoID: id}
	}

	return domain.YouTubeResult{Outcome: domain.Extracted(text, req.Title), VideoID: id}
}
