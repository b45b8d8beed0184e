package viewmodel

import (
	"context"
	"sync"

	"digests-reader/core/domain"
)

// mockSettings is an in-memory SettingsGateway
type mockSettings struct {
	mu       sync.Mutex
	selected *domain.Source
	getErr   error
	setErr   error
	writes   int
}

func (m *mockSettings) SelectedSource(ctx context.Context) (*domain.Source, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
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
	m.writes++
	if source == nil {
		m.selected = nil
		return nil
	}
	s := *source
	m.selected = &s
	return nil
}

// mockCatalog returns a fixed list of sources
type mockCatalog struct {
	sources []domain.Source
	err     error
}

func (m *mockCatalog) Load() ([]domain.Source, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Source, len(m.sources))
	copy(out, m.sources)
	return out, nil
}

// mockDataGateway delegates to fetchFunc
type mockDataGateway struct {
	fetchFunc func(ctx context.Context, source domain.Source) ([]domain.FeedItem, error)
}

func (m *mockDataGateway) Fetch(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, source)
	}
	return nil, nil
}

// recordingLogger keeps every message for assertions
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *recordingLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// recorder collects stream emissions from any goroutine
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}
