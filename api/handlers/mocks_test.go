package handlers

import (
	"context"
	"sync"

	"digests-reader/core/domain"
)

// mockSettings keeps the selected source in memory
type mockSettings struct {
	mu       sync.Mutex
	selected *domain.Source
	setErr   error
}

func (m *mockSettings) SelectedSource(ctx context.Context) (*domain.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return nil, nil
	}
	s := *m.selected
	return &s, nil
}

func (m *mockSettings) SetSelectedSource(ctx context.Context, source *domain.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if source == nil {
		m.selected = nil
		return nil
	}
	s := *source
	m.selected = &s
	return nil
}

// mockData is a function-backed DataGateway
type mockData struct {
	fetchFunc func(ctx context.Context, source domain.Source) ([]domain.FeedItem, error)
}

func (m *mockData) Fetch(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, source)
	}
	return nil, nil
}

// staticCatalog returns a fixed source list
type staticCatalog []domain.Source

func (c staticCatalog) Load() ([]domain.Source, error) {
	out := make([]domain.Source, len(c))
	copy(out, c)
	return out, nil
}

var testCatalog = staticCatalog{
	{Title: "Alpha News", URL: "https://alpha.example.com/rss"},
	{Title: "Beta Blog", URL: "https://beta.example.com/feed"},
	{Title: "Gamma Daily", URL: "https://gamma.example.com/atom"},
}

// mockReader is a function-backed ArticleReader
type mockReader struct {
	openFunc func(ctx context.Context, item domain.FeedItem) (*domain.Article, error)
}

func (m *mockReader) Open(ctx context.Context, item domain.FeedItem) (*domain.Article, error) {
	return m.openFunc(ctx, item)
}
