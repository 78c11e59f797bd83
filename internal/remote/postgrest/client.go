// Package postgrest implements remote.Service against a Supabase-style backend:
// GoTrue anonymous auth under /auth/v1 and PostgREST tables under /rest/v1.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/dailyword/internal/remote"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultPageSize    = 1000
	defaultMaxAttempts = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2
	maxErrorBodyLength = 300
)

// Client talks to the auth and REST endpoints of one project.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	sessions   remote.SessionStore

	pageSize    int
	maxAttempts int
	retryDelay  time.Duration
	now        func() time.Time

	mu      sync.RWMutex
	session remote.Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithPageSize sets how many rows SelectAll requests per page.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithMaxAttempts sets how many times one request is sent when it is rate limited
// or the server fails. 1 sends every request once and leaves retrying to the caller.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the delay before the first retry.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) { c.retryDelay = delay }
}

// NewClient creates a client for the project at baseURL. sessions may be nil,
// in which case every process signs in anew.
func NewClient(baseURL, anonKey string, sessions remote.SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		sessions:   sessions,
		pageSize:    defaultPageSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  initialRetryDelay,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authResponse is the GoTrue session payload returned by signup and token refresh.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (r authResponse) session(now time.Time) remote.Session {
	s := remote.Session{
		UserID:       r.User.ID,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0).UTC()
	case r.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return s
}

// Authenticate reuses a stored session, refreshes it when expired, and otherwise
// signs in anonymously.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if session, ok := c.currentSession(); ok && !session.Expired(c.now()) {
		return session.UserID, nil
	}

	if c.sessions != nil {
		stored, ok, err := c.sessions.LoadSession()
		if err != nil {
			return "", &remote.AuthError{Err: fmt.Errorf("load session: %w", err)}
		}
		if ok {
			if !stored.Expired(c.now()) {
				c.setSession(stored)
				return stored.UserID, nil
			}
			if stored.RefreshToken != "" {
				refreshed, err := c.refresh(ctx, stored.RefreshToken)
				if err == nil {
					return refreshed.UserID, c.storeSession(refreshed)
				}
				log.Printf("Sync: session refresh failed, signing in again: %v", err)
			}
		}
	}

	session, err := c.signInAnonymously(ctx)
	if err != nil {
		return "", &remote.AuthError{Err: err}
	}
	return session.UserID, c.storeSession(session)
}

func (c *Client) signInAnonymously(ctx context.Context) (remote.Session, error) {
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", struct{}{}, &resp, "", false); err != nil {
		return remote.Session{}, fmt.Errorf("anonymous sign-in: %w", err)
	}
	if resp.User.ID == "" || resp.AccessToken == "" {
		return remote.Session{}, fmt.Errorf("anonymous sign-in: response has no session")
	}
	return resp.session(c.now()), nil
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (remote.Session, error) {
	var resp authResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=refresh_token", body, &resp, "", false); err != nil {
		return remote.Session{}, fmt.Errorf("refresh session: %w", err)
	}
	if resp.User.ID == "" || resp.AccessToken == "" {
		return remote.Session{}, fmt.Errorf("refresh session: response has no session")
	}
	return resp.session(c.now()), nil
}

func (c *Client) storeSession(session remote.Session) error {
	c.setSession(session)
	if c.sessions == nil {
		return nil
	}
	if err := c.sessions.SaveSession(session); err != nil {
		return &remote.AuthError{Err: fmt.Errorf("save session: %w", err)}
	}
	return nil
}

func (c *Client) currentSession() (remote.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session, c.session.UserID != ""
}

func (c *Client) setSession(session remote.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Upsert posts rows to the table, merging rows that collide on onConflict.
func (c *Client) Upsert(ctx context.Context, table remote.Table, rows []remote.Row, onConflict string) error {
	if len(rows) == 0 {
		return nil
	}

	u := c.tableURL(table)
	q := url.Values{}
	q.Set("on_conflict", onConflict)
	u.RawQuery = q.Encode()

	return c.doJSON(ctx, http.MethodPost, u.String(), rows, nil, "resolution=merge-duplicates,return=minimal", true)
}

// SelectAll pages through every row of table owned by userID.
func (c *Client) SelectAll(ctx context.Context, table remote.Table, userID string) ([]remote.Row, error) {
	rows := []remote.Row{}
	for offset := 0; ; offset += c.pageSize {
		u := c.tableURL(table)
		q := url.Values{}
		q.Set("select", "*")
		q.Set("user_id", "eq."+userID)
		q.Set("order", "translation.asc,verse_index.asc")
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(offset))
		u.RawQuery = q.Encode()

		var page []remote.Row
		if err := c.doJSON(ctx, http.MethodGet, u.String(), nil, &page, "", true); err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if len(page) < c.pageSize {
			return rows, nil
		}
	}
}

func (c *Client) tableURL(table remote.Table) *url.URL {
	u, _ := url.Parse(c.baseURL + "/rest/v1/" + string(table))
	return u
}

// doJSON sends body as JSON and decodes the response into out, retrying rate limits
// and server errors with exponential backoff. withSession sends the user's access
// token instead of the anon key.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any, prefer string, withSession bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.calculateRetryDelay(attempt)):
			}
		}

		lastErr = c.do(ctx, method, rawURL, payload, out, prefer, withSession)
		if lastErr == nil {
			return nil
		}

		// Only retry on rate limits or server errors
		if !remote.IsRetryable(lastErr) {
			return lastErr
		}
	}

	if c.maxAttempts == 1 {
		return lastErr
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, out any, prefer string, withSession bool) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	token := c.anonKey
	if session, ok := c.currentSession(); withSession && ok && session.AccessToken != "" {
		token = session.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return remote.ErrRateLimited
	}
	if resp.StatusCode >= 500 {
		return &remote.ServerError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &remote.AuthError{Err: &remote.APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &remote.APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the message field PostgREST and GoTrue put in error bodies.
func readErrorMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, m := range []string{payload.Message, payload.Msg, payload.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBodyLength {
		msg = msg[:maxErrorBodyLength]
	}
	return msg
}

func (c *Client) calculateRetryDelay(attempt int) time.Duration {
	delay := c.retryDelay
	for i := 1; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
