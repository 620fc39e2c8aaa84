package library

import (
	"sort"
	"strings"
)

// Snapshot indexes a fetched catalog by book id for display enrichment. It
// lives in memory for the duration of one view and is never persisted.
type Snapshot map[int64]*Book

// NewSnapshot builds an index over a fetched catalog.
func NewSnapshot(books []*Book) Snapshot {
	snap := make(Snapshot, len(books))
	for _, b := range books {
		snap[b.ID] = b
	}
	return snap
}

// SortBooksByID orders a catalog listing ascending by id, the default
// catalog-page order.
func SortBooksByID(books []*Book) {
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
}

// PopularBooks returns the n lowest-stock books: the fewer copies left, the
// more borrowed the title. The input is not modified.
func PopularBooks(books []*Book, n int) []*Book {
	out := make([]*Book, len(books))
	copy(out, books)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FilterBooks narrows a listing by free-text query (title, author, category)
// and by category. Empty arguments match everything; matching is
// case-insensitive.
func FilterBooks(books []*Book, query, category string) []*Book {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	var out []*Book
	for _, b := range books {
		if category != "" && !strings.Contains(strings.ToLower(b.Category), category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Title), query) &&
			!strings.Contains(strings.ToLower(b.Author), query) &&
			!strings.Contains(strings.ToLower(b.Category), query) {
			continue
		}
		out = append(out, b)
	}
	return out
}
