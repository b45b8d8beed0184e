// ABOUTME: Source domain model represents a named feed endpoint (title + URL)
// ABOUTME: Equality is by normalized URL so catalog and persisted entries can be matched

package domain

import (
	"errors"
	"net/url"
	"strings"
)

// Source is a feed endpoint the user can pick. It is immutable once built;
// pass it by value.
type Source struct {
	// Title is the human-readable name shown in the selection list
	Title string `json:"title" yaml:"title"`

	// URL is the RSS/Atom feed address
	URL string `json:"url" yaml:"url"`
}

// NewSource creates a validated Source
func NewSource(title, feedURL string) (Source, error) {
	s := Source{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(feedURL),
	}
	if err := s.Validate(); err != nil {
		return Source{}, err
	}
	return s, nil
}

// Validate checks that the source has a title and an absolute http(s) URL
func (s Source) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("source title cannot be empty")
	}

	if strings.TrimSpace(s.URL) == "" {
		return errors.New("source URL cannot be empty")
	}

	parsed, err := url.Parse(strings.TrimSpace(s.URL))
	if err != nil {
		return errors.New("source URL is not valid format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("source URL must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("source URL must have a host")
	}

	return nil
}

// Equal reports whether both sources point at the same feed.
// Titles are ignored: a feed renamed in the catalog is still the same feed.
func (s Source) Equal(other Source) bool {
	return NormalizeURL(s.URL) == NormalizeURL(other.URL)
}

// NormalizeURL returns the comparison form of a feed URL: trimmed, with
// lower-cased scheme and host and without a trailing slash.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return strings.TrimSuffix(raw, "/")
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawPath = ""
	return parsed.String()
}
