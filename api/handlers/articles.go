// ABOUTME: Article handler for the Huma API
// ABOUTME: Returns the readable content behind a feed item's link

package handlers

import (
	"context"
	"net/http"

	"digests-reader/core/domain"
	"github.com/danielgtaylor/huma/v2"
)

// ArticleReader extracts the article behind a feed item
type ArticleReader interface {
	Open(ctx context.Context, item domain.FeedItem) (*domain.Article, error)
}

// ArticleHandler serves item details
type ArticleHandler struct {
	reader ArticleReader
}

// NewArticleHandler creates an article handler
func NewArticleHandler(reader ArticleReader) *ArticleHandler {
	return &ArticleHandler{reader: reader}
}

// RegisterRoutes registers the article route
func (h *ArticleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/articles",
		Summary:     "Read an item",
		Description: "Extracts the readable article at the given item link, as plain text and Markdown",
		Tags:        []string{"Feed"},
	}, h.GetArticle)
}

// GetArticleInput names the item link
type GetArticleInput struct {
	URL   string `query:"url" required:"true" minLength:"1" maxLength:"2048" doc:"Item link"`
	Title string `query:"title" doc:"Item title, used when the page has none"`
}

// GetArticleOutput is the extracted article
type GetArticleOutput struct {
	Body domain.Article
}

// GetArticle handles GET /articles
func (h *ArticleHandler) GetArticle(ctx context.Context, input *GetArticleInput) (*GetArticleOutput, error) {
	article, err := h.reader.Open(ctx, domain.FeedItem{Title: input.Title, Link: input.URL})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetArticleOutput{Body: *article}, nil
}
