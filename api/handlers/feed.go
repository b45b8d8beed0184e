// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Triggers a load of the saved source and returns the next outcome

package handlers

import (
	"context"
	"net/http"
	"time"

	"digests-reader/api/dto/mappers"
	"digests-reader/api/dto/requests"
	"digests-reader/api/dto/responses"
	"digests-reader/core/domain"
	"digests-reader/core/feed"
	"digests-reader/core/reactive"
	"github.com/danielgtaylor/huma/v2"
)

// DefaultLoadTimeout bounds how long a request waits for the feed model
const DefaultLoadTimeout = 35 * time.Second

// FeedLoader is the part of the feed model the API drives
type FeedLoader interface {
	Load() reactive.Sink[reactive.Signal]
	Feed() reactive.Observable[[]domain.FeedItem]
	OnError() reactive.Observable[error]
	Title(ctx context.Context) string
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	model   FeedLoader
	timeout time.Duration
}

// NewFeedHandler creates a new feed handler. A zero timeout uses DefaultLoadTimeout.
func NewFeedHandler(model FeedLoader, timeout time.Duration) *FeedHandler {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &FeedHandler{model: model, timeout: timeout}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "loadFeed",
		Method:      http.MethodPost,
		Path:        "/feed/load",
		Summary:     "Load the saved source",
		Description: "Fetches the saved source and returns one page of its items, or the message the reader would show",
		Tags:        []string{"Feed"},
	}, h.LoadFeed)
}

// LoadFeedInput carries optional pagination
type LoadFeedInput struct {
	Body *requests.LoadFeedRequest `required:"false"`
}

// LoadFeedOutput is one page of items
type LoadFeedOutput struct {
	Body responses.FeedResponse
}

type loadOutcome struct {
	items []domain.FeedItem
	err   error
}

// LoadFeed handles POST /feed/load
func (h *FeedHandler) LoadFeed(ctx context.Context, input *LoadFeedInput) (*LoadFeedOutput, error) {
	req := requests.LoadFeedRequest{}
	if input.Body != nil {
		req = *input.Body
	}
	req.ApplyDefaults()

	outcome := make(chan loadOutcome, 1)
	deliver := func(o loadOutcome) {
		select {
		case outcome <- o:
		default:
		}
	}

	var bag reactive.Bag
	defer bag.Dispose()
	bag.Add(
		h.model.Feed().Subscribe(func(items []domain.FeedItem) { deliver(loadOutcome{items: items}) }),
		h.model.OnError().Subscribe(func(err error) { deliver(loadOutcome{err: err}) }),
	)

	h.model.Load().Emit(reactive.Signal{})

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	select {
	case o := <-outcome:
		if o.err != nil {
			return nil, toHumaError(o.err)
		}
		page := feed.PaginateItems(o.items, req.Page, req.ItemsPerPage)
		return &LoadFeedOutput{Body: responses.FeedResponse{
			Title:        h.model.Title(ctx),
			Items:        mappers.ToFeedItemResponses(page),
			Page:         req.Page,
			ItemsPerPage: req.ItemsPerPage,
			TotalItems:   len(o.items),
		}}, nil
	case <-ctx.Done():
		return nil, huma.Error504GatewayTimeout("Timed out waiting for the feed")
	}
}
