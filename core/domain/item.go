// ABOUTME: FeedItem domain model represents an individual entry within a feed
// ABOUTME: View-models pass items through untouched from the data gateway to the UI

package domain

import "time"

// FeedItem represents an individual item/entry in a feed
type FeedItem struct {
	// ID is the unique identifier for the item (GUID or link)
	ID string `json:"id,omitempty"`

	// Title is the item's headline
	Title string `json:"title"`

	// Link is the URL to the full article
	Link string `json:"link"`

	// Published is when the item was published
	Published time.Time `json:"published"`

	// Summary is a plain-text excerpt of the item
	Summary string `json:"summary"`

	Author    string `json:"author,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// IsValid checks if the feed item has all required fields
func (fi *FeedItem) IsValid() bool {
	if fi.Title == "" {
		return false
	}

	if fi.Link == "" {
		return false
	}

	return true
}
