// ABOUTME: Extraction domain model: content kinds, requests and the per-kind result variants
// ABOUTME: Results form a closed set so dispatch code can switch over every kind

package domain

// ContentKind identifies which extraction strategy handles a URL
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindYouTube ContentKind = "youtube"
	KindBluesky ContentKind = "bluesky"
	KindPodcast ContentKind = "podcast"
)

// ExtractionRequest is the immutable input to the extraction dispatcher.
// Empty Source and Title mean the caller did not supply them.
type ExtractionRequest struct {
	URL    string
	Source string
	Title  string
}

// Outcome is the part shared by every result variant.
// Exactly one of Text and Error is non-empty.
type Outcome struct {
	// Text is the normalized plain text
	Text string

	// Title is the document title, when known
	Title string

	// Error is a user-facing explanation of why no text could be produced
	Error string
}

// Extracted builds a successful outcome
func Extracted(text, title string) Outcome {
	return Outcome{Text: text, Title: title}
}

// Unavailable builds an outcome that carries no text
func Unavailable(msg string) Outcome {
	if msg == "" {
		msg = "content unavailable"
	}
	return Outcome{Error: msg}
}

// OK reports whether the outcome carries text
func (o Outcome) OK() bool {
	return o.Error == "" && o.Text != ""
}

// Summary returns the shared outcome of a result variant
func (o Outcome) Summary() Outcome {
	return o
}

// ExtractionResult is implemented only by the variants in this file.
type ExtractionResult interface {
	Kind() ContentKind
	Summary() Outcome
	isExtractionResult()
}

// ArticleResult is produced by generic HTML article extraction
type ArticleResult struct {
	Outcome
}

// YouTubeResult is produced from a video's captions
type YouTubeResult struct {
	Outcome
	VideoID string
}

// BlueskyResult is produced from a Bluesky post thread
type BlueskyResult struct {
	Outcome
	Handle string
	PostID string
}

// PodcastResult never carries text; FallbackURL points the reader at the episode page
type PodcastResult struct {
	Outcome
	FallbackURL string
}

func (ArticleResult) Kind() ContentKind { return KindArticle }
func (YouTubeResult) Kind() ContentKind { return KindYouTube }
func (BlueskyResult) Kind() ContentKind { return KindBluesky }
func (PodcastResult) Kind() ContentKind { return KindPodcast }

func (ArticleResult) isExtractionResult() {}
func (YouTubeResult) isExtractionResult() {}
func (BlueskyResult) isExtractionResult() {}
func (PodcastResult) isExtractionResult() {}

// UnavailableResult builds a text-less result of the given kind.
// Unknown kinds fall back to an article result.
func UnavailableResult(kind ContentKind, msg string) ExtractionResult {
	o := Unavailable(msg)
	switch kind {
	case KindYouTube:
		return YouTubeResult{Outcome: o}
	case KindBluesky:
		return BlueskyResult{Outcome: o}
	case KindPodcast:
		return PodcastResult{Outcome: o}
	default:
		return ArticleResult{Outcome: o}
	}
}
