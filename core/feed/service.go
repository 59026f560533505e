// ABOUTME: Feed service fetches subscribed feed documents through the document fetcher
// ABOUTME: Sources are fetched one at a time and the caller is told after each one

package feed

import (
	"context"
	"fmt"
	"time"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/errors"
	"feeds-app-api/core/interfaces"
)

// Result is a successfully fetched feed document
type Result struct {
	Source   domain.Source
	Document *domain.Document
}

// Failure records why a source could not be fetched
type Failure struct {
	Source domain.Source
	Err    error
}

// Progress is reported after each source finishes
type Progress struct {
	Source domain.Source
	OK     bool
	Err    error
	Done   int
	Total  int
}

// Service fetches feed documents
type Service struct {
	fetcher interfaces.DocumentFetcher
	logger  interfaces.Logger
}

// NewService creates a new feed service instance
func NewService(fetcher interfaces.DocumentFetcher, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// Fetch retrieves one source. A non-2xx answer is an *errors.ExternalAPIError.
func (s *Service) Fetch(ctx context.Context, src domain.Source) (*domain.Document, error) {
	doc, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src.Name, err)
	}
	if !doc.OK() {
		return nil, &errors.ExternalAPIError{
			StatusCode: doc.StatusCode,
			Message:    fmt.Sprintf("failed to fetch %s", src.Name),
			API:        src.URL,
		}
	}
	return doc, nil
}

// FetchAll fetches the enabled sources serially, calling onProgress (if non-nil) after each.
// Cancelling ctx stops the run; sources not yet attempted are not reported.
func (s *Service) FetchAll(ctx context.Context, sources []domain.Source, onProgress func(Progress)) ([]Result, []Failure) {
	enabled := make([]domain.Source, 0, len(sources))
	for _, src := range sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	start := time.Now()
	var results []Result
	var failures []Failure

	for i, src := range enabled {
		if ctx.Err() != nil {
			break
		}

		doc, err := s.Fetch(ctx, src)
		if err != nil {
			failures = append(failures, Failure{Source: src, Err: err})
			s.logger.Warn("Feed fetch failed", map[string]interface{}{
				"source": src.Name,
				"url":    src.URL,
				"error":  err.Error(),
			})
		} else {
			results = append(results, Result{Source: src, Document: doc})
		}

		if onProgress != nil {
			onProgress(Progress{Source: src, OK: err == nil, Err: err, Done: i + 1, Total: len(enabled)})
		}
	}

	s.logger.Info("Feed refresh finished", map[string]interface{}{
		"ok":          len(results),
		"failed":      len(failures),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return results, failures
}
