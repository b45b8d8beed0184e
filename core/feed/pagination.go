// ABOUTME: Page slicing for feed items shown by the API
// ABOUTME: Out-of-range pages yield an empty, non-nil page

package feed

import "digests-reader/core/domain"

// defaultPageSize applies when callers pass a non-positive page size
const defaultPageSize = 10

// PaginateItems returns the 1-based page of items. A page below 1 is treated
// as the first page.
func PaginateItems(items []domain.FeedItem, page, perPage int) []domain.FeedItem {
	page = max(page, 1)
	if perPage < 1 {
		perPage = defaultPageSize
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []domain.FeedItem{}
	}

	return items[start:min(start+perPage, len(items))]
}
