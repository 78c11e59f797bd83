package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/remote"
)

const testAnonKey = "anon-key"

// fakeProject is a minimal stand-in for the auth and REST endpoints.
type fakeProject struct {
	mu sync.Mutex

	signups       int
	refreshes     int
	failNext      map[string]int // path -> number of 503 responses to return first
	rows          map[string]map[string]remote.Row
	upsertHeaders []http.Header
}

func newFakeProject(t *testing.T) (*fakeProject, *httptest.Server) {
	p := &fakeProject{
		failNext: map[string]int{},
		rows:     map[string]map[string]remote.Row{},
	}
	server := httptest.NewServer(p)
	t.Cleanup(server.Close)
	return p, server
}

func (p *fakeProject) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Header.Get("apikey") != testAnonKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if n := p.failNext[r.URL.Path]; n > 0 {
		p.failNext[r.URL.Path] = n - 1
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch {
	case r.URL.Path == "/auth/v1/signup":
		p.signups++
		p.writeSession(w, fmt.Sprintf("user-%d", p.signups), fmt.Sprintf("access-%d", p.signups))
	case r.URL.Path == "/auth/v1/token":
		p.refreshes++
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["refresh_token"] != "refresh-ok" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_description":"Invalid Refresh Token"}`))
			return
		}
		p.writeSession(w, "user-refreshed", "access-refreshed")
	case strings.HasPrefix(r.URL.Path, "/rest/v1/"):
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer access-") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"JWT expired"}`))
			return
		}
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		if r.Method == http.MethodPost {
			p.upsert(w, r, table)
			return
		}
		p.selectRows(w, r, table)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProject) writeSession(w http.ResponseWriter, userID, token string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token":  token,
		"refresh_token": "refresh-ok",
		"expires_in":    3600,
		"user":          map[string]string{"id": userID},
	})
}

func (p *fakeProject) upsert(w http.ResponseWriter, r *http.Request, table string) {
	p.upsertHeaders = append(p.upsertHeaders, r.Header.Clone())
	if r.URL.Query().Get("on_conflict") != remote.ConflictKey {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var rows []remote.Row
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if p.rows[table] == nil {
		p.rows[table] = map[string]remote.Row{}
	}
	for _, row := range rows {
		p.rows[table][fmt.Sprintf("%s/%s/%d", row.UserID, row.Translation, row.VerseIndex)] = row
	}
	w.WriteHeader(http.StatusCreated)
}

func (p *fakeProject) selectRows(w http.ResponseWriter, r *http.Request, table string) {
	q := r.URL.Query()
	userID := strings.TrimPrefix(q.Get("user_id"), "eq.")
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	var matched []remote.Row
	for _, row := range p.rows[table] {
		if row.UserID == userID {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Translation != matched[j].Translation {
			return matched[i].Translation < matched[j].Translation
		}
		return matched[i].VerseIndex < matched[j].VerseIndex
	})

	page := []remote.Row{}
	if offset < len(matched) {
		end := min(offset+limit, len(matched))
		page = matched[offset:end]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

type memorySessions struct {
	session remote.Session
	ok      bool
	saves   int
}

func (m *memorySessions) LoadSession() (remote.Session, bool, error) { return m.session, m.ok, nil }

func (m *memorySessions) SaveSession(s remote.Session) error {
	m.session, m.ok = s, true
	m.saves++
	return nil
}

func (m *memorySessions) ClearSession() error {
	m.session, m.ok = remote.Session{}, false
	return nil
}

func newTestClient(server *httptest.Server, sessions remote.SessionStore, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(server.Client()), WithRetryDelay(time.Millisecond)}, opts...)
	return NewClient(server.URL+"/", testAnonKey, sessions, opts...)
}

func TestClient_AuthenticateAnonymously(t *testing.T) {
	project, server := newFakeProject(t)
	sessions := &memorySessions{}
	client := newTestClient(server, sessions)

	userID, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, 1, sessions.saves)
	assert.Equal(t, "access-1", sessions.session.AccessToken)
	assert.False(t, sessions.session.ExpiresAt.IsZero())

	// cached session, no second sign-up
	userID, err = client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, 1, project.signups)
}

func TestClient_AuthenticateReusesStoredSession(t *testing.T) {
	project, server := newFakeProject(t)
	sessions := &memorySessions{ok: true, session: remote.Session{
		UserID:      "stored-user",
		AccessToken: "access-stored",
		ExpiresAt:   time.Now().Add(time.Hour),
	}}
	client := newTestClient(server, sessions)

	userID, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-user", userID)
	assert.Zero(t, project.signups)
}

func TestClient_AuthenticateRefreshesExpiredSession(t *testing.T) {
	project, server := newFakeProject(t)
	sessions := &memorySessions{ok: true, session: remote.Session{
		UserID:       "stored-user",
		AccessToken:  "access-old",
		RefreshToken: "refresh-ok",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}}
	client := newTestClient(server, sessions)

	userID, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-refreshed", userID)
	assert.Equal(t, 1, project.refreshes)
	assert.Zero(t, project.signups)
	assert.Equal(t, "access-refreshed", sessions.session.AccessToken)
}

func TestClient_AuthenticateFallsBackToSignup(t *testing.T) {
	project, server := newFakeProject(t)
	sessions := &memorySessions{ok: true, session: remote.Session{
		UserID:       "stored-user",
		RefreshToken: "revoked",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}}
	client := newTestClient(server, sessions)

	userID, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, 1, project.refreshes)
	assert.Equal(t, 1, project.signups)
}

func TestClient_AuthenticateFailure(t *testing.T) {
	_, server := newFakeProject(t)
	client := NewClient(server.URL, "wrong-key", nil, WithHTTPClient(server.Client()))

	_, err := client.Authenticate(context.Background())
	require.Error(t, err)
	assert.True(t, remote.IsAuthError(err))
}

func TestClient_UpsertAndSelectAll(t *testing.T) {
	project, server := newFakeProject(t)
	client := newTestClient(server, nil, WithPageSize(2))

	userID, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := []remote.Row{
		{UserID: userID, Translation: "KJV", VerseIndex: 3, Book: 1, Chapter: 1, Verse: 3, Color: "#fff", CreatedAt: &created},
		{UserID: userID, Translation: "KJV", VerseIndex: 1, Book: 1, Chapter: 1, Verse: 1, Color: "#000", CreatedAt: &created},
		{UserID: userID, Translation: "ASV", VerseIndex: 2, Book: 1, Chapter: 1, Verse: 2, Color: "#abc", CreatedAt: &created},
		{UserID: "someone-else", Translation: "KJV", VerseIndex: 9, Color: "#999", CreatedAt: &created},
	}
	require.NoError(t, client.Upsert(context.Background(), remote.TableHighlights, rows, remote.ConflictKey))
	require.NoError(t, client.Upsert(context.Background(), remote.TableHighlights, nil, remote.ConflictKey))

	require.Len(t, project.upsertHeaders, 1)
	headers := project.upsertHeaders[0]
	assert.Equal(t, "Bearer access-1", headers.Get("Authorization"))
	assert.Contains(t, headers.Get("Prefer"), "resolution=merge-duplicates")
	assert.Equal(t, "application/json", headers.Get("Content-Type"))

	// replace on conflict
	replacement := []remote.Row{{UserID: userID, Translation: "KJV", VerseIndex: 1, Book: 1, Chapter: 1, Verse: 1, Color: "#111", CreatedAt: &created}}
	require.NoError(t, client.Upsert(context.Background(), remote.TableHighlights, replacement, remote.ConflictKey))

	selected, err := client.SelectAll(context.Background(), remote.TableHighlights, userID)
	require.NoError(t, err)
	require.Len(t, selected, 3)
	assert.Equal(t, "ASV", selected[0].Translation)
	assert.Equal(t, 1, selected[1].VerseIndex)
	assert.Equal(t, "#111", selected[1].Color)
	require.NotNil(t, selected[2].CreatedAt)
	assert.True(t, created.Equal(*selected[2].CreatedAt))

	empty, err := client.SelectAll(context.Background(), remote.TableNotes, userID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	project, server := newFakeProject(t)
	client := newTestClient(server, nil)

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	project.failNext["/rest/v1/bookmarks"] = 2
	rows := []remote.Row{{UserID: "user-1", Translation: "KJV", VerseIndex: 1}}
	require.NoError(t, client.Upsert(context.Background(), remote.TableBookmarks, rows, remote.ConflictKey))

	project.failNext["/rest/v1/bookmarks"] = defaultMaxAttempts
	err = client.Upsert(context.Background(), remote.TableBookmarks, rows, remote.ConflictKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.True(t, remote.IsRetryable(err))
}

func TestClient_SingleAttemptLeavesRetryToCaller(t *testing.T) {
	project, server := newFakeProject(t)
	client := newTestClient(server, nil, WithMaxAttempts(1))

	_, err := client.Authenticate(context.Background())
	require.NoError(t, err)

	project.failNext["/rest/v1/bookmarks"] = 1
	rows := []remote.Row{{UserID: "user-1", Translation: "KJV", VerseIndex: 1}}
	err = client.Upsert(context.Background(), remote.TableBookmarks, rows, remote.ConflictKey)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "max retries exceeded")
	assert.True(t, remote.IsRetryable(err))

	require.NoError(t, client.Upsert(context.Background(), remote.TableBookmarks, rows, remote.ConflictKey))
}

func TestClient_RequestWithoutSessionIsRejected(t *testing.T) {
	_, server := newFakeProject(t)
	client := newTestClient(server, nil)

	_, err := client.SelectAll(context.Background(), remote.TableNotes, "user-1")
	require.Error(t, err)
	assert.True(t, remote.IsAuthError(err))
	assert.Contains(t, err.Error(), "JWT expired")
}

func TestCalculateRetryDelay(t *testing.T) {
	client := NewClient("http://example.invalid", testAnonKey, nil)
	assert.Equal(t, initialRetryDelay, client.calculateRetryDelay(1))
	assert.Equal(t, 2*initialRetryDelay, client.calculateRetryDelay(2))
	assert.Equal(t, maxRetryDelay, client.calculateRetryDelay(10))
}
