// Package viewmodel turns persisted settings and fetched feed data into
// UI-ready, continuously updated state.
//
// SourceSelectionModel owns the list of selectable sources and enforces the
// single-selection rule. FeedModel turns load triggers into fetches and
// republishes the outcome on separate feed, error and refresh channels.
//
// Both models deliver emissions synchronously on the calling goroutine.
// Subscriber callbacks must not call back into the SourceSelectionModel
// synchronously.
package viewmodel
