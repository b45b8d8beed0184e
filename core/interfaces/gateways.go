// ABOUTME: Gateway interfaces consumed by the view-models
// ABOUTME: Settings persist the chosen source, data fetches feed items for a source

package interfaces

import (
	"context"

	"digests-reader/core/domain"
)

// SettingsGateway persists the currently chosen feed source across restarts.
type SettingsGateway interface {
	// SelectedSource returns the persisted source, or nil when nothing was
	// saved yet. Absence is not an error.
	SelectedSource(ctx context.Context) (*domain.Source, error)

	// SetSelectedSource persists source. A nil source clears the setting.
	SetSelectedSource(ctx context.Context, source *domain.Source) error
}

// DataGateway fetches the items of a feed source.
//
// Fetch is called from its own goroutine by the feed view-model. Errors are
// expected to be *errors.RssParsingError when the content could not be
// parsed and *errors.NetworkError for anything else.
type DataGateway interface {
	Fetch(ctx context.Context, source domain.Source) ([]domain.FeedItem, error)
}
