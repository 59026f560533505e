// ABOUTME: Collaborator interfaces for extraction strategies
// ABOUTME: Caption retrieval is abstracted so the YouTube strategy never touches subprocesses directly

package interfaces

import (
	"context"
	"errors"

	"feeds-app-api/core/domain"
)

// ErrNoCaptions is returned by a CaptionSource when the video has no usable subtitles
var ErrNoCaptions = errors.New("no captions available")

// CaptionSource returns the raw caption document (WebVTT or SRT) for a video
type CaptionSource interface {
	Captions(ctx context.Context, videoID string) (string, error)
}

// ContentExtractor turns an extraction request into a result.
// Only malformed requests produce an error.
type ContentExtractor interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error)
}
