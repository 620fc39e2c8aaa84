package library

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUserDecodeNormalizesFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want User
	}{
		{
			name: "canonical",
			raw:  `{"user_id":7,"full_name":"Ani","email":"ani@example.com","phone":"0812","address":"Jl. Melati","role":"user"}`,
			want: User{ID: 7, FullName: "Ani", Email: "ani@example.com", Phone: "0812", Address: "Jl. Melati", Role: RoleUser},
		},
		{
			name: "alternate id and name keys",
			raw:  `{"id":"42","nama":"Budi","no_telp":"0813","role":"ADMIN"}`,
			want: User{ID: 42, FullName: "Budi", Phone: "0813", Role: RoleAdmin},
		},
		{
			name: "camel case id",
			raw:  `{"userId":9,"full_name":"Citra"}`,
			want: User{ID: 9, FullName: "Citra", Role: RoleUser},
		},
		{
			name: "mongo style id",
			raw:  `{"_id":"11","nama":"Dewi"}`,
			want: User{ID: 11, FullName: "Dewi", Role: RoleUser},
		},
		{
			name: "canonical keys win over aliases",
			raw:  `{"user_id":1,"id":2,"full_name":"Eka","nama":"Wrong","phone":"0814","no_telp":"0000"}`,
			want: User{ID: 1, FullName: "Eka", Phone: "0814", Role: RoleUser},
		},
	}

	for _, c := range cases {
		var got User
		if err := json.Unmarshal([]byte(c.raw), &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestUserRoundTrip(t *testing.T) {
	in := User{ID: 3, FullName: "Ani", Email: "ani@example.com", Phone: "0812", Address: "Jl. Melati", Role: RoleAdmin}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out User
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestBookingDecode(t *testing.T) {
	raw := `{
		"booking_id": 15,
		"buku_id": 4,
		"user_id": "7",
		"status": "Diproses",
		"tanggal_booking": "2024-03-01 10:30:00",
		"buku": {"buku_id": 4, "Judul": "Laskar Pelangi", "Penulis": "Andrea Hirata"},
		"user": {"full_name": "Ani"}
	}`
	var b Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.ID != 15 || b.BookID != 4 || b.UserID != 7 {
		t.Fatalf("ids not normalized: %+v", b)
	}
	if b.Status != StatusPending || !b.Known {
		t.Fatalf("alias status not canonicalized: %q known=%v", b.Status, b.Known)
	}
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	if !b.BookedAt.Equal(want) {
		t.Fatalf("booked at = %v, want %v", b.BookedAt, want)
	}
	if b.Book == nil || b.Book.Title != "Laskar Pelangi" {
		t.Fatalf("embedded book not decoded: %+v", b.Book)
	}
	if b.Borrower != "Ani" {
		t.Fatalf("borrower = %q", b.Borrower)
	}
}

func TestBookingDecodeDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-02-10T08:00:00Z", time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)},
		{"2024-02-10 08:00:00", time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)},
		{"2024-02-10", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}
	for _, c := range cases {
		if got := parseBookingTime(c.raw); !got.Equal(c.want) {
			t.Errorf("parseBookingTime(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestEnrichPrefersEmbeddedTitleAndCatalogCover(t *testing.T) {
	snap := NewSnapshot([]*Book{
		{ID: 4, Title: "Catalog Title", Author: "Catalog Author", Cover: "/covers/4.jpg"},
	})
	b := &Booking{
		BookID: 4,
		Book:   &Book{ID: 4, Title: "Embedded Title", Cover: "/stale.jpg"},
	}
	b.Enrich(snap)
	if b.Title != "Embedded Title" {
		t.Errorf("title = %q, want embedded title", b.Title)
	}
	if b.Cover != "/covers/4.jpg" {
		t.Errorf("cover = %q, want catalog cover", b.Cover)
	}
	if b.Author != "Catalog Author" {
		t.Errorf("author = %q, want catalog author", b.Author)
	}
}

func TestEnrichFallsBackToPlaceholders(t *testing.T) {
	b := &Booking{BookID: 99}
	b.Enrich(nil)
	if b.Title != PlaceholderTitle {
		t.Errorf("title = %q, want %q", b.Title, PlaceholderTitle)
	}
	if b.Cover != PlaceholderCover {
		t.Errorf("cover = %q, want %q", b.Cover, PlaceholderCover)
	}
	if b.Author != PlaceholderAuthor {
		t.Errorf("author = %q, want %q", b.Author, PlaceholderAuthor)
	}
}

func TestBookTagList(t *testing.T) {
	b := &Book{Tags: "novel, sejarah , , fiksi"}
	got := b.TagList()
	want := []string{"novel", "sejarah", "fiksi"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags = %v, want %v", got, want)
		}
	}
	if (&Book{}).TagList() != nil {
		t.Fatal("empty tags must yield nil")
	}
}
