// Package infrastructure provides the concrete implementations of the
// contracts in core/interfaces.
//
// It is organized by technical concern:
//
//   - cache/memory: in-process cache backed by go-cache
//   - cache/redis: Redis cache with a key prefix
//   - cache/sqlite: SQLite cache; a zero TTL never expires, which the CLI uses for its local snapshot
//   - cache/backend: opens one of the above by name
//   - kvstore: string key-value view over any cache, used for sync snapshots
//   - http/standard: net/http client with per-instance headers and retry on timeouts and connection failures, plus a size-capped document fetcher
//   - http/syncremote: reconcile.Remote against a running API's /sync route
//   - captions/ytdlp: caption download through the yt-dlp executable
//   - logger/logrus: structured logging
//
// # Example
//
//	b, err := backend.Open("sqlite", cfg.Cache, logger)
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//	store := reconcile.NewSnapshotStore(kvstore.New(b.Cache, "sync:"))
package infrastructure
