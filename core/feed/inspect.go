package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Summary describes a feed document without exposing its items
type Summary struct {
	Type  string
	Title string
	Items int
}

// DetectType sniffs the feed format: "rss", "atom", "json", or "" when unknown
func DetectType(body []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(body)) {
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return ""
	}
}

// Inspect parses body far enough to report its title and item count
func Inspect(body []byte) (Summary, error) {
	if len(body) == 0 {
		return Summary{}, fmt.Errorf("empty feed content")
	}
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return Summary{}, fmt.Errorf("parse feed: %w", err)
	}
	return Summary{Type: DetectType(body), Title: parsed.Title, Items: len(parsed.Items)}, nil
}
