// ABOUTME: Local read-state tracker: mark read/unread, toggle and last-visit bookkeeping
// ABOUTME: Operates on one participant's snapshot store; sync happens separately

package reconcile

import (
	"context"
	"time"
)

// Tracker records what the local user has read
type Tracker struct {
	store *SnapshotStore
	now   func() time.Time
}

// NewTracker creates a tracker. A nil clock uses time.Now.
func NewTracker(store *SnapshotStore, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, now: now}
}

// MarkRead stamps id with the current time
func (t *Tracker) MarkRead(ctx context.Context, id string) error {
	read, err := t.store.ReadArticles(ctx)
	if err != nil {
		return err
	}
	read[id] = t.now().UnixMilli()
	return t.store.Apply(ctx, Update{ReadArticles: read})
}

// MarkUnread forgets id
func (t *Tracker) MarkUnread(ctx context.Context, id string) error {
	read, err := t.store.ReadArticles(ctx)
	if err != nil {
		return err
	}
	if _, ok := read[id]; !ok {
		return nil
	}
	delete(read, id)
	return t.store.Apply(ctx, Update{ReadArticles: read})
}

// IsRead reports whether id is marked read
func (t *Tracker) IsRead(ctx context.Context, id string) (bool, error) {
	read, err := t.store.ReadArticles(ctx)
	if err != nil {
		return false, err
	}
	_, ok := read[id]
	return ok, nil
}

// Toggle flips the read state of id and returns the new state
func (t *Tracker) Toggle(ctx context.Context, id string) (bool, error) {
	read, err := t.IsRead(ctx, id)
	if err != nil {
		return false, err
	}
	if read {
		return false, t.MarkUnread(ctx, id)
	}
	return true, t.MarkRead(ctx, id)
}

// LastVisit returns the last recorded visit in epoch milliseconds, or nil
func (t *Tracker) LastVisit(ctx context.Context) (*int64, error) {
	return t.store.LastVisit(ctx)
}

// UpdateLastVisit records a visit now
func (t *Tracker) UpdateLastVisit(ctx context.Context) error {
	now := t.now().UnixMilli()
	return t.store.Apply(ctx, Update{LastVisit: &now})
}

// Clear forgets all read marks and the last visit
func (t *Tracker) Clear(ctx context.Context) error {
	return t.store.Clear(ctx)
}
