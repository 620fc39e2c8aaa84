package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
)

// BookingAPI is the backend surface the booking views consume.
type BookingAPI interface {
	UserBookings(ctx context.Context, userID int64) ([]*Booking, error)
	AllBookings(ctx context.Context) ([]*Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, status Status, actorID int64) error
	Catalog(ctx context.Context) ([]*Book, error)
}

// BookingList drives one booking view: it fetches records, enriches them
// from a catalog snapshot, keeps them in display order, and applies status
// transitions optimistically. All three consumers (user list, profile
// history, admin dashboard) share this logic.
type BookingList struct {
	session *Session
	api     BookingAPI

	bookings []*Booking
	inflight map[int64]bool
}

// NewBookingList binds a view to the shared session and the API client.
func NewBookingList(session *Session, api BookingAPI) *BookingList {
	return &BookingList{
		session:  session,
		api:      api,
		inflight: make(map[int64]bool),
	}
}

// Load fetches the current user's bookings.
func (l *BookingList) Load(ctx context.Context) error {
	user := l.session.CurrentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	bookings, err := l.api.UserBookings(ctx, user.ID)
	if err != nil {
		return l.checkAuth(err)
	}
	l.finish(ctx, bookings)
	return nil
}

// LoadAll fetches every booking for the admin dashboard. Drafts are the
// owner's private state and are filtered out.
func (l *BookingList) LoadAll(ctx context.Context) error {
	if l.session.Role() != RoleAdmin {
		return errors.New("admin role required")
	}
	bookings, err := l.api.AllBookings(ctx)
	if err != nil {
		return l.checkAuth(err)
	}
	kept := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != StatusDraft {
			kept = append(kept, b)
		}
	}
	l.finish(ctx, kept)
	return nil
}

// finish enriches and orders a fetched batch. A failed catalog fetch only
// costs covers and titles, never the booking list itself.
func (l *BookingList) finish(ctx context.Context, bookings []*Booking) {
	var snap Snapshot
	if books, err := l.api.Catalog(ctx); err == nil {
		snap = NewSnapshot(books)
	} else {
		log.Printf("bookings: catalog snapshot unavailable: %v", err)
	}
	for _, b := range bookings {
		b.Enrich(snap)
	}
	SortBookings(bookings)
	l.bookings = bookings
}

// All returns the full list in display order.
func (l *BookingList) All() []*Booking { return l.bookings }

// Active returns the in-flight bookings.
func (l *BookingList) Active() []*Booking { return l.bucket(BucketActive) }

// History returns the terminal bookings.
func (l *BookingList) History() []*Booking { return l.bucket(BucketHistory) }

func (l *BookingList) bucket(want Bucket) []*Booking {
	var out []*Booking
	for _, b := range l.bookings {
		if b.Status.Bucket() == want {
			out = append(out, b)
		}
	}
	return out
}

// Find returns the loaded booking with the given id, or nil.
func (l *BookingList) Find(bookingID int64) *Booking {
	for _, b := range l.bookings {
		if b.ID == bookingID {
			return b
		}
	}
	return nil
}

// RequestTransition asks the backend to move a booking to a new status. The
// transition is validated against the role table before any network call,
// guarded against duplicate requests for the same booking, applied
// optimistically, and reverted if the backend refuses. The backend's error
// message is returned verbatim.
func (l *BookingList) RequestTransition(ctx context.Context, bookingID int64, to Status) error {
	user := l.session.CurrentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	b := l.Find(bookingID)
	if b == nil {
		return fmt.Errorf("booking %d not found", bookingID)
	}
	if !CanTransition(b.Status, to, user.Role) {
		return fmt.Errorf("cannot change booking %d from %s to %s", bookingID, b.Status, to)
	}
	if l.inflight[bookingID] {
		return fmt.Errorf("booking %d already has a request in flight", bookingID)
	}
	l.inflight[bookingID] = true
	defer delete(l.inflight, bookingID)

	prev, prevKnown := b.Status, b.Known
	b.Status, b.Known = to, true
	if err := l.api.UpdateBookingStatus(ctx, bookingID, to, user.ID); err != nil {
		b.Status, b.Known = prev, prevKnown
		return l.checkAuth(err)
	}
	return nil
}

// checkAuth invalidates the session on authorization failures so the next
// view re-prompts for login.
func (l *BookingList) checkAuth(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		l.session.Invalidate()
	}
	return err
}

// SortBookings orders bookings newest first: descending by booking date,
// ties broken on id descending so the order is deterministic.
func SortBookings(bookings []*Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.BookedAt.Equal(b.BookedAt) {
			return a.BookedAt.After(b.BookedAt)
		}
		return a.ID > b.ID
	})
}
