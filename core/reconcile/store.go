// ABOUTME: Snapshot codec over a string key-value store
// ABOUTME: Structured fields are stored as JSON, the last visit as a decimal string

package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
)

// Store keys
const (
	KeyReadArticles = "read-articles"
	KeyLastVisit    = "last-visit"
	KeySources      = "sources"
)

// Update carries the fields to write; nil fields are left untouched
type Update struct {
	ReadArticles domain.ReadArticles
	LastVisit    *int64
	Sources      []domain.Source
}

// SnapshotStore reads and writes snapshots in a KVStore
type SnapshotStore struct {
	kv interfaces.KVStore
}

// NewSnapshotStore wraps kv
func NewSnapshotStore(kv interfaces.KVStore) *SnapshotStore {
	return &SnapshotStore{kv: kv}
}

// Load reads the full snapshot. Missing keys yield an empty read map, nil last visit and nil sources.
func (s *SnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	read, err := s.ReadArticles(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	lastVisit, err := s.LastVisit(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	sources, err := s.Sources(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{ReadArticles: read, LastVisit: lastVisit, Sources: sources}, nil
}

// Save writes every field of snap that has a value
func (s *SnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	read := snap.ReadArticles
	if read == nil {
		read = domain.ReadArticles{}
	}
	return s.Apply(ctx, Update{ReadArticles: read, LastVisit: snap.LastVisit, Sources: snap.Sources})
}

// Apply writes the fields present in u
func (s *SnapshotStore) Apply(ctx context.Context, u Update) error {
	if u.ReadArticles != nil {
		data, err := json.Marshal(u.ReadArticles)
		if err != nil {
			return fmt.Errorf("encode read articles: %w", err)
		}
		if err := s.kv.Set(ctx, KeyReadArticles, string(data)); err != nil {
			return fmt.Errorf("store read articles: %w", err)
		}
	}
	if u.LastVisit != nil {
		if err := s.kv.Set(ctx, KeyLastVisit, strconv.FormatInt(*u.LastVisit, 10)); err != nil {
			return fmt.Errorf("store last visit: %w", err)
		}
	}
	if u.Sources != nil {
		data, err := json.Marshal(u.Sources)
		if err != nil {
			return fmt.Errorf("encode sources: %w", err)
		}
		if err := s.kv.Set(ctx, KeySources, string(data)); err != nil {
			return fmt.Errorf("store sources: %w", err)
		}
	}
	return nil
}

// ReadArticles returns the read map, empty when nothing is stored
func (s *SnapshotStore) ReadArticles(ctx context.Context) (domain.ReadArticles, error) {
	raw, ok, err := s.kv.Get(ctx, KeyReadArticles)
	if err != nil {
		return nil, fmt.Errorf("load read articles: %w", err)
	}
	read := domain.ReadArticles{}
	if !ok || strings.TrimSpace(raw) == "" {
		return read, nil
	}
	if err := json.Unmarshal([]byte(raw), &read); err != nil {
		return nil, fmt.Errorf("decode read articles: %w", err)
	}
	if read == nil {
		read = domain.ReadArticles{}
	}
	return read, nil
}

// LastVisit returns the stored last visit; a missing or unparseable value is nil
func (s *SnapshotStore) LastVisit(ctx context.Context) (*int64, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastVisit)
	if err != nil {
		return nil, fmt.Errorf("load last visit: %w", err)
	}
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, nil
	}
	return &v, nil
}

// Sources returns the stored source list, nil when none was stored
func (s *SnapshotStore) Sources(ctx context.Context) ([]domain.Source, error) {
	raw, ok, err := s.kv.Get(ctx, KeySources)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var sources []domain.Source
	if err := json.Unmarshal([]byte(raw), &sources); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return sources, nil
}

// Clear removes the read map and last visit, keeping sources
func (s *SnapshotStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyReadArticles); err != nil {
		return fmt.Errorf("clear read articles: %w", err)
	}
	if err := s.kv.Delete(ctx, KeyLastVisit); err != nil {
		return fmt.Errorf("clear last visit: %w", err)
	}
	return nil
}
