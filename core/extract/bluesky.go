// ABOUTME: Bluesky strategy reads a post's text from the public AppView API
// ABOUTME: Falls back to generic article extraction when the API answers with an error status

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
)

// DefaultBlueskyAPI is the public, unauthenticated AppView endpoint
const DefaultBlueskyAPI = "https://public.api.bsky.app"

var blueskyPostURL = regexp.MustCompile(`bsky\.app/profile/([^/?#]+)/post/([^/?#]+)`)

// postThread is the subset of app.bsky.feed.getPostThread we read
type postThread struct {
	Thread struct {
		Post struct {
			Record struct {
				Text string `json:"text"`
			} `json:"record"`
		} `json:"post"`
	} `json:"thread"`
}

// BlueskyStrategy extracts the text of a single Bluesky post
type BlueskyStrategy struct {
	client   interfaces.HTTPClient
	apiBase  string
	fallback Strategy
	logger   interfaces.Logger
}

// NewBlueskyStrategy creates a Bluesky strategy. fallback handles posts the API refuses.
func NewBlueskyStrategy(client interfaces.HTTPClient, apiBase string, fallback Strategy, logger interfaces.Logger) *BlueskyStrategy {
	if apiBase == "" {
		apiBase = DefaultBlueskyAPI
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &BlueskyStrategy{
		client:   client,
		apiBase:  strings.TrimRight(apiBase, "/"),
		fallback: fallback,
		logger:   logger,
	}
}

// Extract implements Strategy. The returned kind is article when the fallback ran.
func (s *BlueskyStrategy) Extract(ctx context.Context, req domain.ExtractionRequest) domain.ExtractionResult {
	m := blueskyPostURL.FindStringSubmatch(req.URL)
	if m == nil {
		return domain.BlueskyResult{Outcome: domain.Unavailable(msgBlueskyParse)}
	}
	handle, postID := m[1], m[2]

	fail := func(msg string) domain.ExtractionResult {
		return domain.BlueskyResult{Outcome: domain.Unavailable(msg), Handle: handle, PostID: postID}
	}

	resp, err := s.client.Get(ctx, s.threadURL(handle, postID))
	if err != nil {
		return fail(fmt.Sprintf(msgBlueskyFetch, err))
	}
	defer resp.Body().Close()

	if !isSuccess(resp.StatusCode()) {
		s.logger.Info("Bluesky API refused post, falling back to article extraction", map[string]interface{}{
			"url":    req.URL,
			"status": resp.StatusCode(),
		})
		if s.fallback == nil {
			return fail(msgBlueskyNoText)
		}
		return s.fallback.Extract(ctx, req)
	}

	var thread postThread
	if err := json.NewDecoder(resp.Body()).Decode(&thread); err != nil {
		return fail(fmt.Sprintf(msgBlueskyFetch, err))
	}

	text := strings.TrimSpace(thread.Thread.Post.Record.Text)
	if text == "" {
		return fail(msgBlueskyNoText)
	}

	return domain.BlueskyResult{
		Outcome: domain.Extracted(text, req.Title),
		Handle:  handle,
		PostID:  postID,
	}
}

func (s *BlueskyStrategy) threadURL(handle, postID string) string {
	uri := fmt.Sprintf("at://%s/app.bsky.feed.post/%s", handle, postID)
	return s.apiBase + "/xrpc/app.bsky.feed.getPostThread?uri=" + url.QueryEscape(uri) + "&depth=0"
}
