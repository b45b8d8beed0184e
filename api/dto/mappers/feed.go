// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"digests-reader/api/dto/responses"
	"digests-reader/core/domain"
	"digests-reader/core/viewmodel"
)

// ToFeedItemResponse converts a domain FeedItem to a FeedItemResponse DTO
func ToFeedItemResponse(item domain.FeedItem) responses.FeedItemResponse {
	return responses.FeedItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Link:      item.Link,
		Summary:   item.Summary,
		Author:    item.Author,
		Thumbnail: item.Thumbnail,
		Published: item.Published,
	}
}

// ToFeedItemResponses converts items, never returning nil
func ToFeedItemResponses(items []domain.FeedItem) []responses.FeedItemResponse {
	out := make([]responses.FeedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToFeedItemResponse(item))
	}
	return out
}

// ToSourceResponse converts a selectable source
func ToSourceResponse(source *viewmodel.SelectableSource) responses.SourceResponse {
	s := source.Source()
	return responses.SourceResponse{
		Title:    s.Title,
		URL:      s.URL,
		Selected: source.Selected(),
	}
}

// ToSourcesResponse converts a source list and the validity of the full selection
func ToSourcesResponse(sources []*viewmodel.SelectableSource, valid bool) responses.SourcesResponse {
	out := responses.SourcesResponse{
		Sources: make([]responses.SourceResponse, 0, len(sources)),
		Valid:   valid,
	}
	for _, source := range sources {
		out.Sources = append(out.Sources, ToSourceResponse(source))
	}
	return out
}
