// Package core contains the business logic of the reader shell.
// It is framework-agnostic: the HTTP API and the CLI are thin adapters over it.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure models (Source, Feed, FeedItem, Article)
// - reactive: Push-based observables used to drive views
// - catalog: The bundled list of feed sources
// - settings: Persistence of the selected source
// - feed: Feed download and parsing, the data gateway
// - reader: Readable article extraction for an item's detail
// - viewmodel: Source selection and feed view-models
// - errors: Error taxonomy shared by every layer
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - View state is exposed as observables, never polled
//
// # Usage Example
//
//	import (
//	    "digests-reader/core/feed"
//	    "digests-reader/core/interfaces"
//	    "digests-reader/core/settings"
//	    "digests-reader/core/viewmodel"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	model := viewmodel.NewFeedModel(viewmodel.FeedConfig{
//	    Settings: settings.NewService(store, myLogger),
//	    Data:     feed.NewFeedService(deps),
//	    Logger:   myLogger,
//	})
//	defer model.Close()
//
//	model.Feed().Subscribe(func(items []domain.FeedItem) { render(items) })
//	model.Load().Emit(reactive.Signal{})
package core
