package library

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Placeholder values used when catalog enrichment cannot resolve a booking's
// book.
const (
	PlaceholderTitle  = "Unknown Book"
	PlaceholderCover  = "/book-placeholder.jpg"
	PlaceholderAuthor = "-"
)

// Book is a catalog entry as served by the backend. The wire format uses the
// backend's Indonesian field names.
type Book struct {
	ID       int64  `json:"buku_id"`
	Title    string `json:"Judul"`
	Author   string `json:"Penulis"`
	Category string `json:"Kategori"`
	Kind     string `json:"Jenis"`
	Synopsis string `json:"Sinopsis"`
	Tags     string `json:"Tags"`
	Stock    int    `json:"Stok"`
	Cover    string `json:"cover"`
}

// CoverURL returns the cover image reference, or the placeholder when the
// catalog entry has none.
func (b *Book) CoverURL() string {
	if b == nil || b.Cover == "" {
		return PlaceholderCover
	}
	return b.Cover
}

// TagList splits the comma-separated Tags field into trimmed entries.
func (b *Book) TagList() []string {
	if b == nil || strings.TrimSpace(b.Tags) == "" {
		return nil
	}
	parts := strings.Split(b.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// User is the authenticated account record. Decoding normalizes the several
// identifier and name spellings different backend endpoints use into single
// canonical fields, so nothing downstream ever guesses field names again.
type User struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
	Address  string
	Role     Role
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       int64  `json:"user_id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Role     Role   `json:"role"`
	}{u.ID, u.FullName, u.Email, u.Phone, u.Address, u.Role})
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID    json.RawMessage `json:"user_id"`
		ID        json.RawMessage `json:"id"`
		UserIDAlt json.RawMessage `json:"userId"`
		MongoID   json.RawMessage `json:"_id"`
		FullName  string          `json:"full_name"`
		Nama      string          `json:"nama"`
		Email     string          `json:"email"`
		Phone     string          `json:"phone"`
		NoTelp    string          `json:"no_telp"`
		Address   string          `json:"address"`
		Role      string          `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = firstID(raw.UserID, raw.ID, raw.UserIDAlt, raw.MongoID)
	u.FullName = firstNonEmpty(raw.FullName, raw.Nama)
	u.Email = raw.Email
	u.Phone = firstNonEmpty(raw.Phone, raw.NoTelp)
	u.Address = raw.Address
	if strings.EqualFold(strings.TrimSpace(raw.Role), string(RoleAdmin)) {
		u.Role = RoleAdmin
	} else {
		u.Role = RoleUser
	}
	return nil
}

// bookingUser is the borrower summary some booking payloads embed.
type bookingUser struct {
	FullName string `json:"full_name"`
}

// Booking is the client's read copy of a booking record. The id is issued by
// the backend and never invented here; Title, Author and Cover are
// display-only enrichment set by Enrich and never sent back.
type Booking struct {
	ID       int64
	BookID   int64
	UserID   int64
	Status   Status
	Known    bool // Status belongs to the canonical vocabulary
	BookedAt time.Time

	Book     *Book // book summary embedded in the payload, may be nil
	Borrower string

	Title  string
	Author string
	Cover  string
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw struct {
		BookingID json.RawMessage `json:"booking_id"`
		BookID    json.RawMessage `json:"buku_id"`
		UserID    json.RawMessage `json:"user_id"`
		Status    string          `json:"status"`
		BookedAt  string          `json:"tanggal_booking"`
		Book      *Book           `json:"buku"`
		User      *bookingUser    `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = firstID(raw.BookingID)
	b.BookID = firstID(raw.BookID)
	b.UserID = firstID(raw.UserID)
	b.Status, b.Known = ParseStatus(raw.Status)
	b.BookedAt = parseBookingTime(raw.BookedAt)
	b.Book = raw.Book
	if raw.User != nil {
		b.Borrower = raw.User.FullName
	}
	return nil
}

// Enrich resolves the display fields from a catalog snapshot. Preference
// follows the booking views: the embedded title wins over the catalog's, the
// catalog cover wins over the embedded one, and anything still missing falls
// back to a placeholder. A nil or incomplete snapshot degrades, never fails.
func (b *Booking) Enrich(snap Snapshot) {
	entry := snap[b.BookID]

	b.Title = PlaceholderTitle
	if b.Book != nil && b.Book.Title != "" {
		b.Title = b.Book.Title
	} else if entry != nil && entry.Title != "" {
		b.Title = entry.Title
	}

	b.Cover = PlaceholderCover
	if entry != nil && entry.Cover != "" {
		b.Cover = entry.Cover
	} else if b.Book != nil && b.Book.Cover != "" {
		b.Cover = b.Book.Cover
	}

	b.Author = PlaceholderAuthor
	if b.Book != nil && b.Book.Author != "" {
		b.Author = b.Book.Author
	} else if entry != nil && entry.Author != "" {
		b.Author = entry.Author
	}
}

// parseBookingTime accepts the timestamp formats the backend has been seen to
// emit. An unparseable value yields the zero time rather than an error; the
// record still renders, sorted last.
func parseBookingTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstID returns the first candidate that decodes to a non-zero integer id,
// accepting JSON numbers and numeric strings.
func firstID(candidates ...json.RawMessage) int64 {
	for _, c := range candidates {
		if v, ok := parseID(c); ok {
			return v
		}
	}
	return 0
}

func parseID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, n != 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f), f != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return v, v != 0
		}
	}
	return 0, false
}
