// ABOUTME: Extraction dispatcher classifies a request and runs the matching strategy
// ABOUTME: Only malformed input is an error; every strategy failure comes back as a result

package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feeds-app-api/core/classify"
	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// DefaultCacheTTL is how long successful extractions are cached
const DefaultCacheTTL = time.Hour

// Strategies holds one strategy per content kind
type Strategies struct {
	Article Strategy
	YouTube Strategy
	Bluesky Strategy
	Podcast Strategy
}

// StrategyConfig configures NewStrategies
type StrategyConfig struct {
	// ArticleClient fetches web pages; it should send browser-like headers
	ArticleClient interfaces.HTTPClient

	// Captions provides caption documents for YouTube videos
	Captions interfaces.CaptionSource

	// BlueskyAPI overrides DefaultBlueskyAPI
	BlueskyAPI string
}

// NewStrategies wires the production strategies. deps.HTTPClient is used for API calls.
func NewStrategies(deps interfaces.Dependencies, cfg StrategyConfig) Strategies {
	articleClient := cfg.ArticleClient
	if articleClient == nil {
		articleClient = deps.HTTPClient
	}
	article := NewArticleStrategy(articleClient, deps.Logger)
	return Strategies{
		Article: article,
		YouTube: NewYouTubeStrategy(cfg.Captions, deps.Logger),
		Bluesky: NewBlueskyStrategy(deps.HTTPClient, cfg.BlueskyAPI, article, deps.Logger),
		Podcast: PodcastStrategy{},
	}
}

// Dispatcher routes extraction requests to strategies
type Dispatcher struct {
	classifier *classify.Classifier
	strategies Strategies
	cache      interfaces.Cache
	cacheTTL   time.Duration
	logger     interfaces.Logger
}

// NewDispatcher creates a dispatcher. A nil classifier uses the default rules.
func NewDispatcher(deps interfaces.Dependencies, classifier *classify.Classifier, strategies Strategies) *Dispatcher {
	if classifier == nil {
		classifier = classify.New(classify.DefaultRules())
	}
	if strategies.Podcast == nil {
		strategies.Podcast = PodcastStrategy{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Dispatcher{
		classifier: classifier,
		strategies: strategies,
		cache:      deps.Cache,
		cacheTTL:   DefaultCacheTTL,
		logger:     logger,
	}
}

// SetCacheTTL changes how long successful results are cached; 0 disables caching
func (d *Dispatcher) SetCacheTTL(ttl time.Duration) {
	d.cacheTTL = ttl
}

// Extract classifies req and runs the matching strategy.
// It returns an error only when req has no URL.
func (d *Dispatcher) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, &errors.ValidationError{Field: "url", Message: "URL is required"}
	}

	kind := d.classifier.Classify(req.URL, req.Source)
	key := cacheKey(kind, req.URL)

	if cached, ok := d.lookup(ctx, key, req.Title); ok {
		return cached, nil
	}

	start := time.Now()
	result := d.run(ctx, kind, req)
	outcome := result.Summary()

	fields := map[string]interface{}{
		"url":         req.URL,
		"classified":  string(kind),
		"kind":        string(result.Kind()),
		"ok":          outcome.OK(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if !outcome.OK() {
		fields["reason"] = outcome.Error
	}
	d.logger.Info("Extraction finished", fields)

	if outcome.OK() {
		d.store(ctx, key, req.Title, result)
	}
	return result, nil
}

// run invokes the strategy for kind, converting a panic into an unavailable result
func (d *Dispatcher) run(ctx context.Context, kind domain.ContentKind, req domain.ExtractionRequest) (result domain.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Extraction strategy panicked", map[string]interface{}{
				"url":   req.URL,
				"kind":  string(kind),
				"panic": fmt.Sprint(r),
			})
			result = domain.UnavailableResult(kind, fmt.Sprintf(msgStrategyPanicked, r))
		}
	}()

	strategy := d.strategyFor(kind)
	if strategy == nil {
		return domain.UnavailableResult(kind, fmt.Sprintf("no extractor configured for %s content", kind))
	}
	return strategy.Extract(ctx, req)
}

func (d *Dispatcher) strategyFor(kind domain.ContentKind) Strategy {
	switch kind {
	case domain.KindYouTube:
		return d.strategies.YouTube
	case domain.KindBluesky:
		return d.strategies.Bluesky
	case domain.KindPodcast:
		return d.strategies.Podcast
	case domain.KindArticle:
		return d.strategies.Article
	}
	return nil
}
