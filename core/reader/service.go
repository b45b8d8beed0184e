// ABOUTME: Reader service extracts the readable article behind a feed item
// ABOUTME: Uses go-readability for extraction and html-to-markdown for the Markdown body

package reader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

// DefaultCacheTTL is how long extracted articles stay cached
const DefaultCacheTTL = time.Hour

const maxPageBytes = 5 << 20

var (
	excessNewlines   = regexp.MustCompile(`\n{3,}`)
	trailingSpace    = regexp.MustCompile(`[ \t]+\n`)
	headingNoSpacing = regexp.MustCompile(`([^\n])\n(#{1,6} )`)
)

// Service extracts articles. The cache is optional.
type Service struct {
	deps     interfaces.Dependencies
	cacheTTL time.Duration
}

// NewService creates a reader service
func NewService(deps interfaces.Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	return &Service{deps: deps, cacheTTL: DefaultCacheTTL}
}

// Extract downloads link and returns its readable article.
// Transport problems yield *errors.NetworkError; a page without readable
// content yields *errors.ExtractionError.
func (s *Service) Extract(ctx context.Context, link string) (*domain.Article, error) {
	pageURL, err := url.Parse(link)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, &coreerrors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}

	if cached := s.cached(ctx, link); cached != nil {
		return cached, nil
	}

	if s.deps.HTTPClient == nil {
		return nil, &coreerrors.NetworkError{URL: link, Err: errors.New("HTTP client not configured")}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, link)
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: link, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.NetworkError{URL: link, StatusCode: resp.StatusCode()}
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body(), maxPageBytes))
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: link, Err: err}
	}

	parsed, err := readability.FromReader(bytes.NewReader(page), pageURL)
	if err != nil {
		return nil, &coreerrors.ExtractionError{URL: link, Err: err}
	}
	if strings.TrimSpace(parsed.TextContent) == "" {
		return nil, &coreerrors.ExtractionError{URL: link}
	}

	article := &domain.Article{
		URL:      link,
		Title:    strings.TrimSpace(parsed.Title),
		Byline:   strings.TrimSpace(parsed.Byline),
		SiteName: parsed.SiteName,
		Image:    parsed.Image,
		Excerpt:  strings.TrimSpace(parsed.Excerpt),
		Text:     strings.TrimSpace(parsed.TextContent),
	}

	body, err := md.NewConverter(pageURL.Host, true, nil).ConvertString(parsed.Content)
	if err != nil {
		// The plain text is still useful without Markdown
		s.deps.Logger.Debug("Failed to convert article to markdown", map[string]interface{}{
			"url":   link,
			"error": err.Error(),
		})
	} else {
		article.Markdown = buildMarkdown(article, body)
	}

	s.store(ctx, link, article)

	s.deps.Logger.Debug("Extracted article", map[string]interface{}{
		"url":   link,
		"chars": len(article.Text),
	})
	return article, nil
}

// Open extracts the article behind item
func (s *Service) Open(ctx context.Context, item domain.FeedItem) (*domain.Article, error) {
	article, err := s.Extract(ctx, item.Link)
	if err != nil {
		return nil, err
	}
	if article.Title == "" {
		article.Title = item.Title
	}
	if article.Byline == "" {
		article.Byline = item.Author
	}
	return article, nil
}

func cacheKey(link string) string {
	return fmt.Sprintf("article:%s", domain.NormalizeURL(link))
}

func (s *Service) cached(ctx context.Context, link string) *domain.Article {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, cacheKey(link))
	if err != nil {
		return nil
	}
	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil
	}
	return &article
}

func (s *Service) store(ctx context.Context, link string, article *domain.Article) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(article)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, cacheKey(link), data, s.cacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache article", map[string]interface{}{
			"url":   link,
			"error": err.Error(),
		})
	}
}

// buildMarkdown prefixes the converted body with a title and a metadata line
func buildMarkdown(article *domain.Article, body string) string {
	var b strings.Builder

	if article.Title != "" {
		b.WriteString("# ")
		b.WriteString(article.Title)
		b.WriteString("\n\n")
	}

	var meta []string
	if article.Byline != "" {
		meta = append(meta, "**Author:** "+article.Byline)
	}
	if article.SiteName != "" {
		meta = append(meta, "**Source:** "+article.SiteName)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | "))
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString(cleanMarkdown(body))
	return b.String()
}

// cleanMarkdown normalizes line endings and collapses runs of blank lines
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")
	markdown = trailingSpace.ReplaceAllString(markdown, "\n")
	markdown = headingNoSpacing.ReplaceAllString(markdown, "$1\n\n$2")
	markdown = excessNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
