package library

import "testing"

func TestParseStatusAliases(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"diajukan", StatusPending},
		{"diproses", StatusPending},
		{"dikembalikan", StatusReturned},
		{"dibatalkan", StatusCancelled},
		{"DIPROSES", StatusPending},
		{"  Dikembalikan ", StatusReturned},
		{"Approved", StatusApproved},
		{"draft", StatusDraft},
	}
	for _, c := range cases {
		got, known := ParseStatus(c.raw)
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
		if !known {
			t.Errorf("ParseStatus(%q) reported unknown", c.raw)
		}
	}
}

func TestParseStatusUnknown(t *testing.T) {
	got, known := ParseStatus("  Weird-State ")
	if known {
		t.Fatal("unexpected known for unrecognized status")
	}
	if got != Status("weird-state") {
		t.Fatalf("unknown status not kept verbatim: %q", got)
	}
	// Unknown statuses surface in the active bucket for review.
	if got.Bucket() != BucketActive {
		t.Fatal("unknown status must bucket as active")
	}
}

func TestBuckets(t *testing.T) {
	history := []Status{StatusReturned, StatusCancelled, StatusRejected}
	active := []Status{StatusDraft, StatusPending, StatusApproved, StatusBorrowed}

	for _, s := range history {
		if s.Bucket() != BucketHistory {
			t.Errorf("%s: want history bucket", s)
		}
		if !s.Terminal() {
			t.Errorf("%s: want terminal", s)
		}
	}
	for _, s := range active {
		if s.Bucket() != BucketActive {
			t.Errorf("%s: want active bucket", s)
		}
		if s.Terminal() {
			t.Errorf("%s: must not be terminal", s)
		}
	}
}

func TestUserTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusDraft, StatusPending},
		{StatusDraft, StatusCancelled},
		{StatusPending, StatusCancelled},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to, RoleUser) {
			t.Errorf("user %s -> %s: want allowed", c.from, c.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusDraft},
		{StatusPending, StatusApproved},
		{StatusBorrowed, StatusReturned},
		{StatusDraft, StatusApproved},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to, RoleUser) {
			t.Errorf("user %s -> %s: want denied", c.from, c.to)
		}
	}
}

func TestAdminTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusReturned},
		{StatusBorrowed, StatusReturned},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to, RoleAdmin) {
			t.Errorf("admin %s -> %s: want allowed", c.from, c.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusApproved, StatusDraft},
		{StatusApproved, StatusCancelled},
		{StatusPending, StatusBorrowed},
		{StatusDraft, StatusPending},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to, RoleAdmin) {
			t.Errorf("admin %s -> %s: want denied", c.from, c.to)
		}
	}
}

func TestTerminalStatusesOfferNoTransitions(t *testing.T) {
	for _, s := range []Status{StatusReturned, StatusCancelled, StatusRejected} {
		for _, role := range []Role{RoleUser, RoleAdmin} {
			if got := AllowedTransitions(s, role); len(got) != 0 {
				t.Errorf("%s as %s: want no transitions, got %v", s, role, got)
			}
		}
	}
}

func TestAdminUnknownActiveStatusCanBeClosed(t *testing.T) {
	s, _ := ParseStatus("stuck")
	got := AllowedTransitions(s, RoleAdmin)
	if len(got) != 1 || got[0] != StatusReturned {
		t.Fatalf("want [returned], got %v", got)
	}
	if got := AllowedTransitions(s, RoleUser); len(got) != 0 {
		t.Fatalf("user must get no actions for unknown status, got %v", got)
	}
}
