// Package remote defines the remote annotation service the sync reconciler talks to.
//
// A Service stores annotation rows per user, keyed by (user_id, translation, verse_index).
// Implementations live in sub-packages: postgrest (Supabase-style REST) and pgstore
// (direct Postgres). The memory sub-package is an in-process fake.
package remote

import (
	"context"
	"time"
)

// Table names one of the annotation tables on the remote.
type Table string

const (
	TableBookmarks  Table = "bookmarks"
	TableHighlights Table = "highlights"
	TableNotes      Table = "notes"
)

// Tables lists the annotation tables in push order.
var Tables = []Table{TableBookmarks, TableHighlights, TableNotes}

// ConflictKey is the unique key every remote annotation table upserts on.
const ConflictKey = "user_id,translation,verse_index"

// Row is one remote annotation row. Color is set for highlights, Text for notes.
// UpdatedAt is only meaningful for notes.
type Row struct {
	UserID      string     `json:"user_id"`
	Translation string     `json:"translation"`
	VerseIndex  int        `json:"verse_index"`
	Book        int        `json:"book"`
	Chapter     int        `json:"chapter"`
	Verse       int        `json:"verse"`
	Color       string     `json:"color,omitempty"`
	Text        string     `json:"text,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Service is the capability the reconciler needs from a remote store.
type Service interface {
	// Authenticate returns the remote user id, reusing a stored session when possible
	// and signing in anonymously otherwise.
	Authenticate(ctx context.Context) (string, error)
	// Upsert writes rows into table, replacing rows that collide on onConflict.
	Upsert(ctx context.Context, table Table, rows []Row, onConflict string) error
	// SelectAll returns every row of table owned by userID.
	SelectAll(ctx context.Context, table Table, userID string) ([]Row, error)
}

// Session is a persisted remote identity.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is unusable at now. A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt.Add(-expiryLeeway))
}

const expiryLeeway = 30 * time.Second

// SessionStore persists the remote session between runs.
type SessionStore interface {
	LoadSession() (Session, bool, error)
	SaveSession(session Session) error
	ClearSession() error
}
