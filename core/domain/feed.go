// ABOUTME: Feed domain model represents a fetched RSS/Atom feed with its items
// ABOUTME: Produced by the data gateway; the feed view-model republishes its items

package domain

import (
	"errors"
	"net/url"
	"time"
)

// Feed represents an RSS or Atom feed
type Feed struct {
	// Title is the human-readable title of the feed
	Title string `json:"title"`

	// Description provides a brief description of the feed's content
	Description string `json:"description,omitempty"`

	// URL is the feed's source URL (the actual RSS/Atom URL)
	URL string `json:"url"`

	// Link is the website URL associated with the feed
	Link string `json:"link,omitempty"`

	// Items contains the feed entries
	Items []FeedItem `json:"items"`

	// LastUpdated indicates when the feed was last refreshed
	LastUpdated time.Time `json:"last_updated"`
}

// Validate checks if the feed has valid required fields
func (f *Feed) Validate() error {
	if f.URL == "" {
		return errors.New("feed URL cannot be empty")
	}

	if _, err := url.Parse(f.URL); err != nil {
		return errors.New("feed URL is not valid format")
	}

	return nil
}
