package extract

import (
	"context"

	"feeds-app-api/core/domain"
)

// BatchItem is the outcome of one request in a batch
type BatchItem struct {
	Request domain.ExtractionRequest
	Result  domain.ExtractionResult
	Err     error
}

// BatchProgress is reported after each request of a batch completes
type BatchProgress struct {
	Done  int
	Total int
	Item  BatchItem
}

// ExtractBatch runs requests one at a time, never concurrently, so third-party
// hosts see at most one outbound request from a batch. onProgress may be nil.
// Requests not reached before ctx is cancelled are omitted from the result.
func (d *Dispatcher) ExtractBatch(ctx context.Context, reqs []domain.ExtractionRequest, onProgress func(BatchProgress)) []BatchItem {
	items := make([]BatchItem, 0, len(reqs))
	for i, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		result, err := d.Extract(ctx, req)
		item := BatchItem{Request: req, Result: result, Err: err}
		items = append(items, item)
		if onProgress != nil {
			onProgress(BatchProgress{Done: i + 1, Total: len(reqs), Item: item})
		}
	}
	return items
}
