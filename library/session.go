package library

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotLoggedIn is returned by operations that require an authenticated
// session.
var ErrNotLoggedIn = errors.New("not logged in")

// LogoutAPI is the slice of the API client the logout operation needs.
type LogoutAPI interface {
	Logout(ctx context.Context, token, phone string) error
}

// Session is the single source of truth for who is logged in, plus the two
// UI-visibility flags independent views read and toggle. Exactly one Session
// exists per running process; views share it by reference and mutate it only
// through these methods.
type Session struct {
	mu    sync.Mutex
	store *Store

	user  *User
	token string

	loginPromptVisible bool
	profileMenuVisible bool
}

// NewSession wraps the durable store. Call Restore before first use.
func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Restore hydrates the session from durable storage at startup. It never
// fails the caller: a corrupt or missing record leaves the session logged
// out, with a diagnostic on the log.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.LoadUser()
	if err != nil {
		log.Printf("session: discarding stored user record: %v", err)
		return
	}
	if user == nil {
		return
	}
	token, err := s.store.LoadToken()
	if err != nil {
		// The user record alone is enough to stay logged in; the first
		// authenticated call will 401 and re-prompt.
		log.Printf("session: reading stored token: %v", err)
	}
	s.user = user
	s.token = token
}

// LoginSucceeded records a successful login: the user record and credential
// are persisted, memory state is set, and the login prompt closes.
func (s *Session) LoginSucceeded(user *User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveUser(user); err != nil {
		return err
	}
	if err := s.store.SaveToken(token); err != nil {
		return err
	}
	u := *user
	s.user = &u
	s.token = token
	s.loginPromptVisible = false
	return nil
}

// Logout informs the backend best-effort, then clears local state no matter
// what the network did. Invariant: after Logout returns, the client never
// still looks logged in.
func (s *Session) Logout(ctx context.Context, api LogoutAPI) {
	s.mu.Lock()
	token := s.token
	phone := ""
	if s.user != nil {
		phone = s.user.Phone
	}
	s.mu.Unlock()

	if api != nil && token != "" {
		if err := api.Logout(ctx, token, phone); err != nil {
			log.Printf("session: backend logout failed: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.profileMenuVisible = false
	if err := s.store.ClearSession(); err != nil {
		log.Printf("session: clearing stored credentials: %v", err)
	}
}

// Invalidate drops the session after an authorization failure (401/403) and
// re-opens the login prompt. No network call is made; the credential is
// already dead.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.loginPromptVisible = true
	if err := s.store.ClearSession(); err != nil {
		log.Printf("session: clearing stored credentials: %v", err)
	}
}

// ProfileUpdate carries the fields a profile edit may change. Nil pointers
// leave the current value untouched; fields set at login (email) are trusted
// as-is and not re-validated.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	Address  *string
}

// UpdateProfile merges the update into the current user and re-persists the
// merged record.
func (s *Session) UpdateProfile(upd ProfileUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, ErrNotLoggedIn
	}
	merged := *s.user
	if upd.FullName != nil {
		merged.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		merged.Phone = *upd.Phone
	}
	if upd.Address != nil {
		merged.Address = *upd.Address
	}
	if err := s.store.SaveUser(&merged); err != nil {
		return nil, err
	}
	s.user = &merged
	out := merged
	return &out, nil
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a user is present.
func (s *Session) LoggedIn() bool { return s.CurrentUser() != nil }

// Role returns the current user's role; logged-out sessions act as ordinary
// users.
func (s *Session) Role() Role {
	if u := s.CurrentUser(); u != nil {
		return u.Role
	}
	return RoleUser
}

// Token returns the stored credential, satisfying the API client's
// TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetLoginPromptVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginPromptVisible = v
}

func (s *Session) LoginPromptVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginPromptVisible
}

func (s *Session) SetProfileMenuVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileMenuVisible = v
}

func (s *Session) ProfileMenuVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileMenuVisible
}

// TokenClaims reports the role and expiry embedded in the stored credential,
// when it is a JWT. The token is decoded without signature verification: the
// claims are for display only, the backend stays the authority. ok is false
// when there is no token or it does not parse.
func (s *Session) TokenClaims() (role string, expiry time.Time, ok bool) {
	token := s.Token()
	if token == "" {
		return "", time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, false
	}
	if r, found := claims["role"].(string); found {
		role = r
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return role, expiry, true
}
