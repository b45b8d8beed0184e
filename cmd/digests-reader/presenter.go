// ABOUTME: Terminal presenter receiving navigation requests from the feed model
// ABOUTME: Shows an item's article or points the user back to source selection

package main

import (
	"context"
	"fmt"
	"io"

	"digests-reader/core/domain"
)

type articleOpener interface {
	Open(ctx context.Context, item domain.FeedItem) (*domain.Article, error)
}

// presenter implements viewmodel.FeedDelegate for the CLI. Errors from the
// last request are kept in err since delegate calls return nothing.
type presenter struct {
	ctx      context.Context
	w        io.Writer
	articles articleOpener
	plain    bool
	err      error
}

func (p *presenter) UserDidRequestItemDetail(item domain.FeedItem) {
	article, err := p.articles.Open(p.ctx, item)
	if err != nil {
		p.err = err
		return
	}

	if p.plain || article.Markdown == "" {
		fmt.Fprintf(p.w, "%s\n\n%s\n", article.Title, article.Text)
	} else {
		fmt.Fprintln(p.w, article.Markdown)
	}
	fmt.Fprintf(p.w, "\n%s\n", article.URL)
}

func (p *presenter) UserDidRequestSetup() {
	fmt.Fprintln(p.w, "Pick a source with 'digests-reader sources' and 'digests-reader select <url>'.")
}
