// ABOUTME: URL classifier that maps a content URL and source label to a content kind
// ABOUTME: Pure keyword matching in fixed precedence; no network access

package classify

import (
	"strings"

	"feeds-app-api/core/domain"
)

// Rules holds the keyword sets the classifier matches against.
// All entries are compared lower-cased.
type Rules struct {
	// YouTubeURLPatterns are URL substrings identifying a YouTube video
	YouTubeURLPatterns []string

	// BlueskyDomains are URL substrings identifying a Bluesky post
	BlueskyDomains []string

	// BlueskySourceKeywords match against the source label
	BlueskySourceKeywords []string

	// PodcastSourceKeywords match against the source label
	PodcastSourceKeywords []string
}

// DefaultRules returns the built-in keyword sets
func DefaultRules() Rules {
	return Rules{
		YouTubeURLPatterns:    []string{"youtube.com/watch", "youtu.be/", "youtube.com/shorts"},
		BlueskyDomains:        []string{"bsky.app"},
		BlueskySourceKeywords: []string{"bluesky"},
		PodcastSourceKeywords: []string{"podcast", "latent space", "lex fridman", "huberman"},
	}
}

// Classifier picks the content kind for a URL
type Classifier struct {
	rules Rules
}

// New creates a classifier with the given rules, normalizing them to lower case
func New(rules Rules) *Classifier {
	return &Classifier{
		rules: Rules{
			YouTubeURLPatterns:    lowerAll(rules.YouTubeURLPatterns),
			BlueskyDomains:        lowerAll(rules.BlueskyDomains),
			BlueskySourceKeywords: lowerAll(rules.BlueskySourceKeywords),
			PodcastSourceKeywords: lowerAll(rules.PodcastSourceKeywords),
		},
	}
}

// Classify returns the content kind for url. The first matching rule wins:
// YouTube, then Bluesky, then podcast, else article.
func (c *Classifier) Classify(url, source string) domain.ContentKind {
	lowerURL := strings.ToLower(url)
	lowerSource := strings.ToLower(source)

	switch {
	case containsAny(lowerURL, c.rules.YouTubeURLPatterns):
		return domain.KindYouTube
	case containsAny(lowerURL, c.rules.BlueskyDomains),
		containsAny(lowerSource, c.rules.BlueskySourceKeywords):
		return domain.KindBluesky
	case containsAny(lowerSource, c.rules.PodcastSourceKeywords):
		return domain.KindPodcast
	default:
		return domain.KindArticle
	}
}

// Classify uses the default rules
func Classify(url, source string) domain.ContentKind {
	return defaultClassifier.Classify(url, source)
}

var defaultClassifier = New(DefaultRules())

func containsAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
