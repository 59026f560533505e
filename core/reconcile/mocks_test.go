package reconcile

import (
	"context"
	"errors"
	"sync"

	"feeds-app-api/core/domain"
)

// memoryKV is an in-memory KVStore with optional failure injection
type memoryKV struct {
	mu      sync.Mutex
	data    map[string]string
	setErr  error
	getErr  error
	setKeys []string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.setKeys = append(m.setKeys, key)
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockRemote is a Remote with function fields
type mockRemote struct {
	pullFunc func(ctx context.Context) (domain.Snapshot, error)
	pushFunc func(ctx context.Context, snap domain.Snapshot) error
	pushed   []domain.Snapshot
}

func (m *mockRemote) Pull(ctx context.Context) (domain.Snapshot, error) {
	if m.pullFunc != nil {
		return m.pullFunc(ctx)
	}
	return domain.Snapshot{}, nil
}

func (m *mockRemote) Push(ctx context.Context, snap domain.Snapshot) error {
	m.pushed = append(m.pushed, snap)
	if m.pushFunc != nil {
		return m.pushFunc(ctx, snap)
	}
	return nil
}

var errUnreachable = errors.New("remote unreachable")

func ms(v int64) *int64 { return &v }
