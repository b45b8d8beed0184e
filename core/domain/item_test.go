package domain

import (
	"testing"
	"time"
)

func TestFeedItem_IsValid(t *testing.T) {
	published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		item     FeedItem
		expected bool
	}{
		{
			name:     "title and link present",
			item:     FeedItem{Title: "Release notes", Link: "https://example.com/release", Published: published},
			expected: true,
		},
		{
			name:     "summary alone is not enough",
			item:     FeedItem{Summary: "text only"},
			expected: false,
		},
		{
			name:     "missing link",
			item:     FeedItem{Title: "Release notes"},
			expected: false,
		},
		{
			name:     "missing title",
			item:     FeedItem{Link: "https://example.com/release"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFeed_Validate(t *testing.T) {
	f := &Feed{URL: "https://example.com/feed.xml"}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	empty := &Feed{}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() should fail for a feed without URL")
	}
}
