// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Every collaborator is passed explicitly through constructors, no service locator

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides caching functionality for fetched feeds
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
