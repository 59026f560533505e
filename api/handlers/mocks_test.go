package handlers

import (
	"context"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/reconcile"
)

type mockExtractor struct {
	ExtractFunc func(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error)
}

func (m *mockExtractor) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	return m.ExtractFunc(ctx, req)
}

type mockFetcher struct {
	FetchFunc func(ctx context.Context, url string) (*domain.Document, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.Document, error) {
	return m.FetchFunc(ctx, url)
}

type mockSnapshotStore struct {
	LoadFunc  func(ctx context.Context) (domain.Snapshot, error)
	ApplyFunc func(ctx context.Context, u reconcile.Update) error
}

func (m *mockSnapshotStore) Load(ctx context.Context) (domain.Snapshot, error) {
	return m.LoadFunc(ctx)
}

func (m *mockSnapshotStore) Apply(ctx context.Context, u reconcile.Update) error {
	return m.ApplyFunc(ctx, u)
}
