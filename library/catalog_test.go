package library

import "testing"

func testBooks() []*Book {
	return []*Book{
		{ID: 3, Title: "Bumi", Author: "Tere Liye", Category: "Fiksi", Stock: 2},
		{ID: 1, Title: "Laskar Pelangi", Author: "Andrea Hirata", Category: "Fiksi", Stock: 5},
		{ID: 2, Title: "Sapiens", Author: "Yuval Noah Harari", Category: "Sejarah", Stock: 1},
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := NewSnapshot(testBooks())
	if got := snap[2]; got == nil || got.Title != "Sapiens" {
		t.Fatalf("snap[2] = %+v", got)
	}
	if snap[99] != nil {
		t.Fatal("missing id must yield nil")
	}
}

func TestSortBooksByID(t *testing.T) {
	books := testBooks()
	SortBooksByID(books)
	for i, want := range []int64{1, 2, 3} {
		if books[i].ID != want {
			t.Fatalf("position %d: id %d, want %d", i, books[i].ID, want)
		}
	}
}

func TestPopularBooksLowestStockFirst(t *testing.T) {
	books := testBooks()
	got := PopularBooks(books, 2)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("popular = %+v", got)
	}
	// Original slice stays in its order.
	if books[0].ID != 3 {
		t.Fatal("input slice was reordered")
	}
}

func TestFilterBooks(t *testing.T) {
	books := testBooks()

	if got := FilterBooks(books, "", ""); len(got) != 3 {
		t.Fatalf("empty filter kept %d books", len(got))
	}
	if got := FilterBooks(books, "tere", ""); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("author query = %+v", got)
	}
	if got := FilterBooks(books, "SAPIENS", ""); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("case-insensitive query = %+v", got)
	}
	if got := FilterBooks(books, "", "fiksi"); len(got) != 2 {
		t.Fatalf("category filter = %+v", got)
	}
	if got := FilterBooks(books, "bumi", "sejarah"); len(got) != 0 {
		t.Fatalf("conjunctive filter = %+v", got)
	}
}
