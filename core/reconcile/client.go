// ABOUTME: Sync cycle: pull the remote snapshot, merge with local, push back and persist
// ABOUTME: A failed pull or push leaves the local snapshot as it was

package reconcile

import (
	"context"
	"fmt"
	"sync"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
)

// Remote is the other participant of a sync cycle
type Remote interface {
	Pull(ctx context.Context) (domain.Snapshot, error)
	Push(ctx context.Context, snap domain.Snapshot) error
}

// StoreRemote is a Remote backed directly by a snapshot store
type StoreRemote struct {
	Store *SnapshotStore
}

// Pull implements Remote
func (r StoreRemote) Pull(ctx context.Context) (domain.Snapshot, error) {
	return r.Store.Load(ctx)
}

// Push implements Remote
func (r StoreRemote) Push(ctx context.Context, snap domain.Snapshot) error {
	return r.Store.Save(ctx, snap)
}

// Client runs sync cycles for one local participant
type Client struct {
	local  *SnapshotStore
	remote Remote
	logger interfaces.Logger
	mu     sync.Mutex
}

// NewClient creates a sync client
func NewClient(local *SnapshotStore, remote Remote, logger interfaces.Logger) *Client {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Client{local: local, remote: remote, logger: logger}
}

// Sync performs one pull-merge-push cycle and returns the converged snapshot.
// The local store is written only after the push succeeded.
func (c *Client) Sync(ctx context.Context) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	local, err := c.local.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load local snapshot: %w", err)
	}

	remote, err := c.remote.Pull(ctx)
	if err != nil {
		c.logger.Warn("Sync pull failed", map[string]interface{}{"error": err.Error()})
		return domain.Snapshot{}, fmt.Errorf("pull remote snapshot: %w", err)
	}

	merged := Merge(local, remote)

	if err := c.remote.Push(ctx, merged); err != nil {
		c.logger.Warn("Sync push failed", map[string]interface{}{"error": err.Error()})
		return domain.Snapshot{}, fmt.Errorf("push merged snapshot: %w", err)
	}

	// Read marks made locally while the cycle ran must survive the write.
	latest, err := c.local.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("reload local snapshot: %w", err)
	}
	final := Merge(latest, merged)
	if err := c.local.Save(ctx, final); err != nil {
		return domain.Snapshot{}, fmt.Errorf("save local snapshot: %w", err)
	}

	c.logger.Info("Sync completed", map[string]interface{}{
		"read_articles": len(final.ReadArticles),
		"sources":       len(final.Sources),
	})
	return final, nil
}
