// ABOUTME: Feed service fetches and parses RSS/Atom feeds for a selected source
// ABOUTME: Implements the data gateway used by the feed view-model, with optional caching

package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"
	"digests-reader/pkg/featureflags"
	htmlutil "digests-reader/pkg/utils/html"
	timeutil "digests-reader/pkg/utils/time"
	"github.com/mmcdole/gofeed"
)

const (
	// DefaultCacheTTL is how long a fetched feed is served from cache
	DefaultCacheTTL = 10 * time.Minute

	// summaryLength caps the plain-text summary of an item
	summaryLength = 300

	// maxFeedBytes guards against unbounded responses
	maxFeedBytes = 10 << 20
)

// FeedService fetches feeds over HTTP and converts them to domain models.
type FeedService struct {
	deps     interfaces.Dependencies
	flags    featureflags.Manager
	cacheTTL time.Duration
}

// NewFeedService creates a new feed service instance
func NewFeedService(deps interfaces.Dependencies) *FeedService {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	return &FeedService{
		deps:     deps,
		flags:    featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.CacheEnabled: true}),
		cacheTTL: DefaultCacheTTL,
	}
}

// SetFeatureFlags replaces the flag manager consulted for caching
func (s *FeedService) SetFeatureFlags(flags featureflags.Manager) {
	s.flags = flags
}

// SetCacheTTL sets how long fetched feeds stay cached
func (s *FeedService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// Fetch returns the items of source. It satisfies interfaces.DataGateway.
func (s *FeedService) Fetch(ctx context.Context, source domain.Source) ([]domain.FeedItem, error) {
	feed, err := s.FetchFeed(ctx, source.URL)
	if err != nil {
		return nil, err
	}
	return feed.Items, nil
}

// FetchFeed downloads and parses the feed at feedURL.
// Transport problems yield *errors.NetworkError, unparseable content
// *errors.RssParsingError.
func (s *FeedService) FetchFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	parsedURL, err := url.Parse(feedURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &coreerrors.NetworkError{URL: feedURL, Err: errors.New("invalid URL format")}
	}

	useCache := s.cacheEnabled(ctx)
	if useCache {
		if cached, err := s.getCachedFeed(ctx, feedURL); err == nil && cached != nil {
			s.deps.Logger.Debug("Serving feed from cache", map[string]interface{}{
				"url": feedURL,
			})
			return cached, nil
		}
	}

	if s.deps.HTTPClient == nil {
		return nil, &coreerrors.NetworkError{URL: feedURL, Err: errors.New("HTTP client not configured")}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: feedURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.NetworkError{URL: feedURL, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxFeedBytes))
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: feedURL, Err: err}
	}

	feed, err := s.parseFeedContent(body, feedURL)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.cacheFeed(ctx, feedURL, feed); err != nil {
			s.deps.Logger.Warn("Failed to cache feed", map[string]interface{}{
				"url":   feedURL,
				"error": err.Error(),
			})
		}
	}

	s.deps.Logger.Debug("Fetched feed", map[string]interface{}{
		"url":   feedURL,
		"items": len(feed.Items),
	})

	return feed, nil
}

// parseFeedContent parses feed content from bytes
func (s *FeedService) parseFeedContent(content []byte, feedURL string) (*domain.Feed, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &coreerrors.RssParsingError{URL: feedURL, Description: "The feed is empty."}
	}

	parsedFeed, err := gofeed.NewParser().Parse(bytes.NewReader(content))
	if err != nil {
		description := "The feed could not be read."
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			description = "The address does not point to an RSS or Atom feed."
		}
		return nil, &coreerrors.RssParsingError{URL: feedURL, Description: description, Err: err}
	}

	feed := &domain.Feed{
		Title:       parsedFeed.Title,
		Description: htmlutil.StripHTML(parsedFeed.Description),
		URL:         feedURL,
		Link:        parsedFeed.Link,
		Items:       make([]domain.FeedItem, 0, len(parsedFeed.Items)),
		LastUpdated: timeutil.FirstNonZero(parsedFeed.UpdatedParsed, parsedFeed.PublishedParsed),
	}
	if feed.LastUpdated.IsZero() {
		feed.LastUpdated = time.Now()
	}

	skipped := 0
	for _, item := range parsedFeed.Items {
		converted := convertItemToDomain(item, parsedFeed)
		// Entries without a headline or a link cannot be listed or opened
		if !converted.IsValid() {
			skipped++
			continue
		}
		feed.Items = append(feed.Items, converted)
	}
	if skipped > 0 {
		s.deps.Logger.Debug("Skipped incomplete feed items", map[string]interface{}{
			"url":     feedURL,
			"skipped": skipped,
		})
	}

	return feed, nil
}

// convertItemToDomain converts a gofeed item to domain item
func convertItemToDomain(item *gofeed.Item, feed *gofeed.Feed) domain.FeedItem {
	feedItem := domain.FeedItem{
		ID:        item.GUID,
		Title:     strings.TrimSpace(item.Title),
		Link:      item.Link,
		Published: timeutil.FirstNonZero(item.PublishedParsed, item.UpdatedParsed),
		Thumbnail: findThumbnail(item, feed),
	}

	if feedItem.ID == "" {
		feedItem.ID = item.Link
	}

	if feedItem.Published.IsZero() {
		feedItem.Published = timeutil.ParseFlexibleTime(item.Published)
	}

	if item.Author != nil && item.Author.Name != "" {
		feedItem.Author = item.Author.Name
	} else if item.ITunesExt != nil && item.ITunesExt.Author != "" {
		feedItem.Author = item.ITunesExt.Author
	}

	// Prefer the short description; fall back to the full content
	summarySource := item.Description
	if strings.TrimSpace(summarySource) == "" {
		summarySource = item.Content
	}
	feedItem.Summary = htmlutil.Truncate(htmlutil.StripHTML(summarySource), summaryLength)

	if feedItem.Thumbnail == "" {
		feedItem.Thumbnail = htmlutil.FirstImage(item.Content)
	}
	if feedItem.Thumbnail == "" {
		feedItem.Thumbnail = htmlutil.FirstImage(item.Description)
	}

	return feedItem
}

// findThumbnail finds thumbnail from various sources
func findThumbnail(item *gofeed.Item, feed *gofeed.Feed) string {
	// 1. iTunes extension image
	if item.ITunesExt != nil && item.ITunesExt.Image != "" {
		return item.ITunesExt.Image
	}

	// 2. Image enclosures
	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	// 3. Item image
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	// 4. Feed image
	if feed != nil && feed.Image != nil && feed.Image.URL != "" {
		return feed.Image.URL
	}

	return ""
}

func (s *FeedService) cacheEnabled(ctx context.Context) bool {
	return s.deps.Cache != nil && s.flags != nil && s.flags.IsEnabled(ctx, featureflags.CacheEnabled)
}

func cacheKey(feedURL string) string {
	return fmt.Sprintf("feed:%s", domain.NormalizeURL(feedURL))
}

// getCachedFeed retrieves a feed from cache
func (s *FeedService) getCachedFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	data, err := s.deps.Cache.Get(ctx, cacheKey(feedURL))
	if err != nil {
		return nil, err
	}

	var feed domain.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, err
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}

	return &feed, nil
}

// cacheFeed stores a feed in cache
func (s *FeedService) cacheFeed(ctx context.Context, feedURL string, feed *domain.Feed) error {
	data, err := json.Marshal(feed)
	if err != nil {
		return err
	}

	return s.deps.Cache.Set(ctx, cacheKey(feedURL), data, s.cacheTTL)
}
