// Package core contains the business logic of the Feeds backend.
// It has no HTTP framework dependencies; infrastructure is injected through
// the contracts in core/interfaces.
//
// Sub-packages:
//
//   - domain: extraction requests and results, sync snapshots, feed sources
//   - classify: maps a URL and source label to a content kind
//   - extract: per-kind extraction strategies and the dispatcher that routes to them
//   - transcript: WebVTT and SRT caption parsing into plain text
//   - feed: default sources, serial feed refresh, feed type detection
//   - reconcile: read-state tracking, snapshot storage and the pull-merge-push sync cycle
//   - errors: typed errors so callers never inspect error text
//   - interfaces: cache, HTTP, caption, key-value and logger contracts
//
// # Failure model
//
// Extraction never fails for a well-formed request: strategies turn every
// upstream problem into a result carrying a user-facing reason. Only a missing
// URL is reported as a *errors.ValidationError. Feed and sync code returns
// errors, and transient transport failures are classified as *errors.FetchError
// so retry decisions do not depend on message text.
package core
