// ABOUTME: Pagination and filtering helpers for item listings
// ABOUTME: Clamps page bounds so out-of-range pages yield an empty slice

package mappers

import "linkoff-engine/linkoff"

// DefaultPerPage is used when the caller does not ask for a page size.
const DefaultPerPage = 50

// PaginateItems returns one page of items. Pages start at 1.
func PaginateItems(items []linkoff.Item, page, perPage int) []linkoff.Item {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []linkoff.Item{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// FilterByState keeps the items in state; an empty state keeps everything.
func FilterByState(items []linkoff.Item, state string) []linkoff.Item {
	if state == "" {
		return items
	}
	out := make([]linkoff.Item, 0, len(items))
	for _, item := range items {
		if item.State == state {
			out = append(out, item)
		}
	}
	return out
}
