package extract

import (
	"context"
	"encoding/json"

	"feeds-app-api/core/domain"
)

// cachedResult is the flat, JSON-friendly form of every result variant
type cachedResult struct {
	Kind        domain.ContentKind `json:"kind"`
	Text        string             `json:"text"`
	Title       string             `json:"title,omitempty"`
	Error       string             `json:"error,omitempty"`
	VideoID     string             `json:"videoId,omitempty"`
	Handle      string             `json:"handle,omitempty"`
	PostID      string             `json:"postId,omitempty"`
	FallbackURL string             `json:"fallbackUrl,omitempty"`
}

func cacheKey(kind domain.ContentKind, url string) string {
	return "extract:" + string(kind) + ":" + url
}

// flatten drops a title equal to the caller's so a later hit takes its own caller's title
func flatten(r domain.ExtractionResult, callerTitle string) cachedResult {
	o := r.Summary()
	c := cachedResult{Kind: r.Kind(), Text: o.Text, Title: o.Title, Error: o.Error}
	if c.Title == callerTitle {
		c.Title = ""
	}
	switch v := r.(type) {
	case domain.YouTubeResult:
		c.VideoID = v.VideoID
	case domain.BlueskyResult:
		c.Handle, c.PostID = v.Handle, v.PostID
	case domain.PodcastResult:
		c.FallbackURL = v.FallbackURL
	case domain.ArticleResult:
	}
	return c
}

func (c cachedResult) result(callerTitle string) (domain.ExtractionResult, bool) {
	o := domain.Outcome{Text: c.Text, Title: c.Title, Error: c.Error}
	if o.Title == "" {
		o.Title = callerTitle
	}
	switch c.Kind {
	case domain.KindArticle:
		return domain.ArticleResult{Outcome: o}, true
	case domain.KindYouTube:
		return domain.YouTubeResult{Outcome: o, VideoID: c.VideoID}, true
	case domain.KindBluesky:
		return domain.BlueskyResult{Outcome: o, Handle: c.Handle, PostID: c.PostID}, true
	case domain.KindPodcast:
		return domain.PodcastResult{Outcome: o, FallbackURL: c.FallbackURL}, true
	}
	return nil, false
}

func (d *Dispatcher) lookup(ctx context.Context, key, callerTitle string) (domain.ExtractionResult, bool) {
	if d.cache == nil || d.cacheTTL <= 0 {
		return nil, false
	}
	data, err := d.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var c cachedResult
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false
	}
	r, ok := c.result(callerTitle)
	if !ok || !r.Summary().OK() {
		return nil, false
	}
	return r, true
}

// store caches r; failures only cost a future re-extraction
func (d *Dispatcher) store(ctx context.Context, key, callerTitle string, r domain.ExtractionResult) {
	if d.cache == nil || d.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(flatten(r, callerTitle))
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, key, data, d.cacheTTL); err != nil {
		d.logger.Debug("Failed to cache extraction", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
