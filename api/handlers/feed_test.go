package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"digests-reader/api/dto/responses"
	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/reactive"
	"digests-reader/core/viewmodel"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var savedSource = domain.Source{Title: "Alpha News", URL: "https://alpha.example.com/rss"}

func newFeedAPI(t *testing.T, settings *mockSettings, data *mockData) humatest.TestAPI {
	t.Helper()
	model := viewmodel.NewFeedModel(viewmodel.FeedConfig{Settings: settings, Data: data})
	t.Cleanup(model.Close)

	_, api := humatest.New(t)
	NewFeedHandler(model, time.Second).RegisterRoutes(api)
	return api
}

func itemsN(n int) []domain.FeedItem {
	items := make([]domain.FeedItem, n)
	for i := range items {
		items[i] = domain.FeedItem{
			ID:    fmt.Sprintf("item-%d", i+1),
			Title: fmt.Sprintf("Item %d", i+1),
			Link:  fmt.Sprintf("https://alpha.example.com/%d", i+1),
		}
	}
	return items
}

func TestFeedHandler_LoadPaginates(t *testing.T) {
	data := &mockData{fetchFunc: func(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
		return itemsN(5), nil
	}}
	api := newFeedAPI(t, &mockSettings{selected: &savedSource}, data)

	resp := api.Post("/feed/load", map[string]any{"page": 2, "items_per_page": 2})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out responses.FeedResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "Alpha News", out.Title)
	assert.Equal(t, 5, out.TotalItems)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Item 3", out.Items[0].Title)
	assert.Equal(t, "Item 4", out.Items[1].Title)
}

func TestFeedHandler_LoadWithoutBody(t *testing.T) {
	data := &mockData{fetchFunc: func(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
		return itemsN(3), nil
	}}
	api := newFeedAPI(t, &mockSettings{selected: &savedSource}, data)

	resp := api.Post("/feed/load")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out responses.FeedResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 1, out.Page)
}

func TestFeedHandler_LoadErrors(t *testing.T) {
	tests := []struct {
		name           string
		settings       *mockSettings
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "no saved source",
			settings:       &mockSettings{},
			expectedStatus: http.StatusConflict,
			expectedDetail: "Select a feed source first.",
		},
		{
			name:           "unparseable feed",
			settings:       &mockSettings{selected: &savedSource},
			err:            &coreerrors.RssParsingError{URL: savedSource.URL, Description: "The feed is empty."},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "The feed is empty.",
		},
		{
			name:           "network failure",
			settings:       &mockSettings{selected: &savedSource},
			err:            &coreerrors.NetworkError{URL: savedSource.URL, StatusCode: 503},
			expectedStatus: http.StatusBadGateway,
			expectedDetail: coreerrors.GenericNetworkMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &mockData{fetchFunc: func(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
				return nil, tt.err
			}}
			api := newFeedAPI(t, tt.settings, data)

			resp := api.Post("/feed/load")

			assert.Equal(t, tt.expectedStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.expectedDetail)
		})
	}
}

// silentLoader never publishes an outcome
type silentLoader struct {
	load  *reactive.Subject[reactive.Signal]
	feed  *reactive.Subject[[]domain.FeedItem]
	errs  *reactive.Subject[error]
	loads int
}

func newSilentLoader() *silentLoader {
	l := &silentLoader{
		load: reactive.NewSubject[reactive.Signal](),
		feed: reactive.NewSubject[[]domain.FeedItem](),
		errs: reactive.NewSubject[error](),
	}
	l.load.Subscribe(func(reactive.Signal) { l.loads++ })
	return l
}

func (l *silentLoader) Load() reactive.Sink[reactive.Signal]          { return l.load }
func (l *silentLoader) Feed() reactive.Observable[[]domain.FeedItem] { return l.feed }
func (l *silentLoader) OnError() reactive.Observable[error]          { return l.errs }
func (l *silentLoader) Title(ctx context.Context) string              { return "" }

func TestFeedHandler_LoadTimesOut(t *testing.T) {
	loader := newSilentLoader()
	_, api := humatest.New(t)
	NewFeedHandler(loader, 20*time.Millisecond).RegisterRoutes(api)

	resp := api.Post("/feed/load")

	assert.Equal(t, http.StatusGatewayTimeout, resp.Code)
	assert.Equal(t, 1, loader.loads)
	assert.Zero(t, loader.feed.SubscriberCount(), "subscriptions are released after the request")
	assert.Zero(t, loader.errs.SubscriberCount())
}

func TestNewFeedHandler_DefaultTimeout(t *testing.T) {
	handler := NewFeedHandler(newSilentLoader(), 0)

	assert.Equal(t, DefaultLoadTimeout, handler.timeout)
}
