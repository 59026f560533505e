// Package interfaces defines the contracts the core packages depend on.
// Infrastructure packages implement them; tests replace them with func-field mocks.
package interfaces

import (
	"context"
	"time"
)

// Cache is a byte-oriented store with per-entry expiry.
// Implementations exist for go-cache (memory), Redis and SQLite.
//
//	err := cache.Set(ctx, "extract:https://example.com/post", data, time.Hour)
//	data, err := cache.Get(ctx, "extract:https://example.com/post")
//	if errors.IsNotFound(err) {
//		// miss
//	}
type Cache interface {
	// Get returns the stored value. A missing or expired key yields a *errors.NotFoundError.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 stores it without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
