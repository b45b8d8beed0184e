// ABOUTME: Response DTOs for feed-related API endpoints
// ABOUTME: Provides consistent response structures for feed data

package responses

import "time"

// FeedItemResponse represents a feed item in API responses
type FeedItemResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary,omitempty"`
	Author    string    `json:"author,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Published time.Time `json:"published,omitempty"`
}

// FeedResponse is one page of the selected source's items
type FeedResponse struct {
	Title        string             `json:"title"`
	Items        []FeedItemResponse `json:"items"`
	Page         int                `json:"page"`
	ItemsPerPage int                `json:"items_per_page"`
	TotalItems   int                `json:"total_items"`
}
