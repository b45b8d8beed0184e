// ABOUTME: Feed view-model drives load triggers into fetches of the selected source
// ABOUTME: Publishes items, errors and refresh completion as independent streams

package viewmodel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"
	"digests-reader/core/reactive"
)

// DefaultFetchTimeout bounds a single fetch when FeedConfig.FetchTimeout is zero
const DefaultFetchTimeout = 30 * time.Second

// FeedDelegate receives navigation requests from the feed screen.
type FeedDelegate interface {
	// UserDidRequestItemDetail is invoked when the user opens an item
	UserDidRequestItemDetail(item domain.FeedItem)

	// UserDidRequestSetup is invoked when the user wants to pick another source
	UserDidRequestSetup()
}

// FeedConfig holds the collaborators of a FeedModel
type FeedConfig struct {
	Settings     interfaces.SettingsGateway
	Data         interfaces.DataGateway
	Logger       interfaces.Logger
	Delegate     FeedDelegate
	FetchTimeout time.Duration
}

// FeedModel turns every load trigger into exactly one fetch of the
// persisted source.
//
// Each trigger is tagged with an increasing request id. Only the outcome of
// the most recent trigger is published; an older fetch that completes late
// is dropped. Fetches are never cancelled by newer triggers.
type FeedModel struct {
	settings interfaces.SettingsGateway
	data     interfaces.DataGateway
	logger   interfaces.Logger
	delegate FeedDelegate
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	load            *reactive.Subject[reactive.Signal]
	feed            *reactive.Subject[[]domain.FeedItem]
	onError         *reactive.Subject[error]
	refreshFinished reactive.Observable[reactive.Signal]

	latest    atomic.Uint64
	publishMu sync.Mutex
	inflight  sync.WaitGroup
	bag       reactive.Bag
}

// NewFeedModel creates a FeedModel and starts listening on Load.
func NewFeedModel(cfg FeedConfig) *FeedModel {
	if cfg.Logger == nil {
		cfg.Logger = interfaces.NopLogger{}
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &FeedModel{
		settings: cfg.Settings,
		data:     cfg.Data,
		logger:   cfg.Logger,
		delegate: cfg.Delegate,
		timeout:  cfg.FetchTimeout,
		ctx:      ctx,
		cancel:   cancel,
		load:     reactive.NewSubject[reactive.Signal](),
		feed:     reactive.NewSubject[[]domain.FeedItem](),
		onError:  reactive.NewSubject[error](),
	}

	// Refresh is finished when new data arrives or when the request fails.
	m.refreshFinished = reactive.Merge(
		reactive.Discard[[]domain.FeedItem](m.feed),
		reactive.Discard[error](m.onError),
	)

	m.bag.Add(m.load.Subscribe(func(reactive.Signal) {
		m.trigger()
	}))

	return m
}

// Load is the sink for initial loads and pull-to-refresh alike.
func (m *FeedModel) Load() reactive.Sink[reactive.Signal] {
	return m.load
}

// Feed emits the items of every successful fetch.
func (m *FeedModel) Feed() reactive.Observable[[]domain.FeedItem] {
	return m.feed
}

// OnError emits the error of every failed fetch. Use errors.UserMessage to
// present it.
func (m *FeedModel) OnError() reactive.Observable[error] {
	return m.onError
}

// RefreshFinished fires once for every Feed or OnError emission.
func (m *FeedModel) RefreshFinished() reactive.Observable[reactive.Signal] {
	return m.refreshFinished
}

// Title returns the title of the persisted source, or "" when none is saved.
func (m *FeedModel) Title(ctx context.Context) string {
	source, err := m.settings.SelectedSource(ctx)
	if err != nil || source == nil {
		return ""
	}
	return source.Title
}

// SelectItem forwards an item tap to the delegate.
func (m *FeedModel) SelectItem(item domain.FeedItem) {
	if m.delegate != nil {
		m.delegate.UserDidRequestItemDetail(item)
	}
}

// RequestSetup asks the delegate to show source selection again.
func (m *FeedModel) RequestSetup() {
	if m.delegate != nil {
		m.delegate.UserDidRequestSetup()
	}
}

// Wait blocks until every fetch started so far has finished.
func (m *FeedModel) Wait() {
	m.inflight.Wait()
}

// Close stops listening for triggers, cancels in-flight fetches and waits
// for them. Nothing is published after Close returns.
func (m *FeedModel) Close() {
	m.bag.Dispose()
	m.cancel()
	m.inflight.Wait()
}

func (m *FeedModel) trigger() {
	if m.ctx.Err() != nil {
		return
	}

	id := m.latest.Add(1)
	m.inflight.Add(1)
	go m.fetch(id)
}

func (m *FeedModel) fetch(id uint64) {
	defer m.inflight.Done()

	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	source, err := m.settings.SelectedSource(ctx)
	if err != nil {
		m.publish(id, nil, &coreerrors.NetworkError{Err: coreerrors.WrapError(err, "reading selected source")})
		return
	}
	if source == nil {
		m.publish(id, nil, coreerrors.ErrNoSourceSelected)
		return
	}

	m.logger.Debug("Fetching feed", map[string]interface{}{
		"url":        source.URL,
		"request_id": id,
	})

	items, err := m.data.Fetch(ctx, *source)
	if err != nil {
		m.logger.Warn("Failed to fetch feed", map[string]interface{}{
			"url":        source.URL,
			"request_id": id,
			"error":      err.Error(),
		})
	}
	m.publish(id, items, err)
}

// publish delivers exactly one of items or err, unless a newer trigger
// has been issued since id or the model was closed.
func (m *FeedModel) publish(id uint64, items []domain.FeedItem, err error) {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()

	if m.ctx.Err() != nil {
		return
	}
	if latest := m.latest.Load(); id != latest {
		m.logger.Debug("Discarding stale feed response", map[string]interface{}{
			"request_id": id,
			"latest_id":  latest,
		})
		return
	}

	if err != nil {
		m.onError.Emit(err)
		return
	}
	if items == nil {
		items = []domain.FeedItem{}
	}
	m.feed.Emit(items)
}
