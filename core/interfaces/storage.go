// ABOUTME: Key-value store contract used to persist sync snapshots
// ABOUTME: Values are plain strings; structured fields are JSON-encoded by the caller

package interfaces

import "context"

// KVStore is the string key-value store a sync participant keeps its snapshot in
type KVStore interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error

	// Delete removes key
	Delete(ctx context.Context, key string) error
}
