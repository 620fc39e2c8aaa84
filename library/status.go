package library

import "strings"

// Status is the canonical lifecycle tag of a booking. Raw strings coming off
// the wire pass through ParseStatus exactly once, at decode time; everything
// downstream compares Status values and never re-parses text.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusBorrowed  Status = "borrowed"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// statusAliases maps the Indonesian synonyms the backend still emits onto
// their canonical counterparts. They are aliases, not separate states.
var statusAliases = map[string]Status{
	"diajukan":     StatusPending,
	"diproses":     StatusPending,
	"dikembalikan": StatusReturned,
	"dibatalkan":   StatusCancelled,
}

// ParseStatus canonicalizes a raw status string. Matching is
// case-insensitive. Unknown values are kept verbatim (lower-cased) so they
// stay visible in views; known reports whether the value belongs to the
// canonical vocabulary.
func ParseStatus(raw string) (s Status, known bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[v]; ok {
		return alias, true
	}
	switch Status(v) {
	case StatusDraft, StatusPending, StatusApproved, StatusBorrowed,
		StatusReturned, StatusCancelled, StatusRejected:
		return Status(v), true
	}
	return Status(v), false
}

// Bucket groups statuses for display: in-flight bookings versus history.
type Bucket int

const (
	BucketActive Bucket = iota
	BucketHistory
)

// Bucket classifies a status. Unrecognized statuses count as active: an
// unknown in-flight record should be surfaced for review, not buried in
// history.
func (s Status) Bucket() Bucket {
	switch s {
	case StatusReturned, StatusCancelled, StatusRejected:
		return BucketHistory
	}
	return BucketActive
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool { return s.Bucket() == BucketHistory }

// Role identifies who is requesting a transition.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var userTransitions = map[Status][]Status{
	StatusDraft:   {StatusPending, StatusCancelled},
	StatusPending: {StatusCancelled},
}

var adminTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReturned},
	StatusBorrowed: {StatusReturned},
}

// AllowedTransitions lists the statuses role may move a booking to from its
// current status. A view must not offer an action that is absent here; this
// guards against constructing an invalid request, it does not replace backend
// authorization.
func AllowedTransitions(from Status, role Role) []Status {
	if from.Terminal() {
		return nil
	}
	switch role {
	case RoleAdmin:
		if targets, ok := adminTransitions[from]; ok {
			return targets
		}
		if from == StatusDraft {
			// Drafts are the owner's private state.
			return nil
		}
		// Unrecognized active status: an admin may still close it out.
		return []Status{StatusReturned}
	case RoleUser:
		return userTransitions[from]
	}
	return nil
}

// CanTransition reports whether role may request moving a booking from one
// status to another.
func CanTransition(from, to Status, role Role) bool {
	for _, t := range AllowedTransitions(from, role) {
		if t == to {
			return true
		}
	}
	return false
}
