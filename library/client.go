package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource supplies the bearer credential for authenticated calls. The
// Session satisfies it.
type TokenSource interface {
	Token() string
}

// Client calls the remote library service. It performs no retries; every
// failure is reported to the caller, and 401/403 unwrap to ErrUnauthorized.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient builds a client for the configured backend. tokens may be nil
// for unauthenticated use.
func NewClient(cfg Config, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	return c.doWithToken(ctx, method, path, token, body, out)
}

// doWithToken sends one request and decodes the response into out. Non-2xx
// responses become *APIError; transport failures and non-JSON bodies are
// uniform network failures.
func (c *Client) doWithToken(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("library api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("library api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("library api: invalid response body: %w", err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = firstNonEmpty(payload.Message, payload.Error)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// Catalog lists every catalog entry.
func (c *Client) Catalog(ctx context.Context) ([]*Book, error) {
	var env struct {
		Data []*Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// RegisterRequest carries a new-account registration.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate applies the client-side checks the registration form performs
// before any network call.
func (r RegisterRequest) Validate() error {
	if r.FullName == "" || r.Email == "" || r.Phone == "" ||
		r.Address == "" || r.Password == "" || r.ConfirmPassword == "" {
		return errors.New("all fields are required")
	}
	if r.Password != r.ConfirmPassword {
		return errors.New("password confirmation does not match")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// Login authenticates and returns the user record plus the session token.
// Both the flat {user, token} shape and a {data: {...}} wrapper are accepted.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
		Data  *struct {
			User  *User  `json:"user"`
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, "", err
	}
	user, token := resp.User, resp.Token
	if user == nil && resp.Data != nil {
		user, token = resp.Data.User, resp.Data.Token
	}
	if user == nil {
		return nil, "", errors.New("library api: login response missing user")
	}
	return user, token, nil
}

// Logout tells the backend this credential is done. The token is passed
// explicitly because the session clears its own copy right after.
func (c *Client) Logout(ctx context.Context, token, phone string) error {
	body := map[string]string{"phone": phone}
	return c.doWithToken(ctx, http.MethodPost, "/api/auth/logout", token, body, nil)
}

// UpdateProfile pushes changed profile fields to the backend. Only non-nil
// fields are sent.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	body := map[string]string{}
	if upd.FullName != nil {
		body["full_name"] = *upd.FullName
	}
	if upd.Phone != nil {
		body["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		body["address"] = *upd.Address
	}
	return c.do(ctx, http.MethodPut, "/api/auth/profile", body, nil)
}

// UserBookings lists one user's bookings.
func (c *Client) UserBookings(ctx context.Context, userID int64) ([]*Booking, error) {
	var env struct {
		Data []*Booking `json:"data"`
	}
	path := fmt.Sprintf("/api/booking/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// AllBookings lists every booking (admin dashboard).
func (c *Client) AllBookings(ctx context.Context) ([]*Booking, error) {
	var env struct {
		Data []*Booking `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/booking", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UpdateBookingStatus requests a status change for a booking. actorID is the
// user performing the action so the backend can attribute it.
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID int64, status Status, actorID int64) error {
	body := struct {
		Status Status `json:"status"`
		UserID int64  `json:"user_id"`
	}{status, actorID}
	path := fmt.Sprintf("/api/booking/%d", bookingID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// SendChatMessage forwards a message to the chatbot endpoint and returns the
// bot's reply.
func (c *Client) SendChatMessage(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var resp struct {
		BotResponse string `json:"bot_response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chatbot/send", body, &resp); err != nil {
		return "", err
	}
	return resp.BotResponse, nil
}
