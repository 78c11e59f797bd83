// Package pgstore implements remote.Service directly on a Postgres database.
//
// Identities are rows in sync_users; anonymous sign-in inserts a random UUID.
// Annotation tables mirror the local ones with an extra user_id column and a
// unique key on (user_id, translation, verse_index).
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrlokans/dailyword/internal/remote"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_users (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookmarks (
	user_id     UUID NOT NULL REFERENCES sync_users(id) ON DELETE CASCADE,
	translation TEXT NOT NULL,
	verse_index INTEGER NOT NULL,
	book        INTEGER NOT NULL,
	chapter     INTEGER NOT NULL,
	verse       INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, translation, verse_index)
);

CREATE TABLE IF NOT EXISTS highlights (
	user_id     UUID NOT NULL REFERENCES sync_users(id) ON DELETE CASCADE,
	translation TEXT NOT NULL,
	verse_index INTEGER NOT NULL,
	book        INTEGER NOT NULL,
	chapter     INTEGER NOT NULL,
	verse       INTEGER NOT NULL,
	color       TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, translation, verse_index)
);

CREATE TABLE IF NOT EXISTS notes (
	user_id     UUID NOT NULL REFERENCES sync_users(id) ON DELETE CASCADE,
	translation TEXT NOT NULL,
	verse_index INTEGER NOT NULL,
	book        INTEGER NOT NULL,
	chapter     INTEGER NOT NULL,
	verse       INTEGER NOT NULL,
	text        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, translation, verse_index)
);
`

// payloadColumns lists the per-table columns beyond the shared key and location.
var payloadColumns = map[remote.Table][]string{
	remote.TableBookmarks:  {"created_at"},
	remote.TableHighlights: {"color", "created_at"},
	remote.TableNotes:      {"text", "created_at", "updated_at"},
}

var baseColumns = []string{"user_id", "translation", "verse_index", "book", "chapter", "verse"}

var conflictColumns = map[string]bool{"user_id": true, "translation": true, "verse_index": true}

type Store struct {
	pool     *pgxpool.Pool
	sessions remote.SessionStore

	mu     sync.Mutex
	userID string
}

// Open connects to databaseURL and applies the schema.
func Open(ctx context.Context, databaseURL string, sessions remote.SessionStore) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to sync database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping sync database: %w", err)
	}

	store := New(pool, sessions)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func New(pool *pgxpool.Pool, sessions remote.SessionStore) *Store {
	return &Store{pool: pool, sessions: sessions}
}

// Migrate creates the sync tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate sync database: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Authenticate returns the stored user when it still exists, otherwise creates a new
// anonymous user and persists it as the session.
func (s *Store) Authenticate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID != "" {
		return s.userID, nil
	}

	if s.sessions != nil {
		session, ok, err := s.sessions.LoadSession()
		if err != nil {
			return "", &remote.AuthError{Err: fmt.Errorf("load session: %w", err)}
		}
		if ok && session.UserID != "" {
			exists, err := s.userExists(ctx, session.UserID)
			if err != nil {
				return "", &remote.AuthError{Err: err}
			}
			if exists {
				s.userID = session.UserID
				return s.userID, nil
			}
			log.Printf("Sync: stored user %s not found on remote, signing in again", session.UserID)
		}
	}

	userID := uuid.NewString()
	if _, err := s.pool.Exec(ctx, `INSERT INTO sync_users (id) VALUES ($1)`, userID); err != nil {
		return "", &remote.AuthError{Err: fmt.Errorf("anonymous sign-in: %w", err)}
	}
	if s.sessions != nil {
		if err := s.sessions.SaveSession(remote.Session{UserID: userID}); err != nil {
			return "", &remote.AuthError{Err: fmt.Errorf("save session: %w", err)}
		}
	}
	s.userID = userID
	return userID, nil
}

func (s *Store) userExists(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sync_users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("look up user: %w", err)
	}
	return exists, nil
}

// Upsert inserts rows in one transaction, replacing rows that collide on onConflict.
func (s *Store) Upsert(ctx context.Context, table remote.Table, rows []remote.Row, onConflict string) error {
	if len(rows) == 0 {
		return nil
	}
	payload, ok := payloadColumns[table]
	if !ok {
		return &remote.APIError{StatusCode: 404, Message: "unknown table " + string(table)}
	}
	conflict, err := parseConflict(onConflict)
	if err != nil {
		return err
	}

	columns := append(append([]string{}, baseColumns...), payload...)
	query := upsertQuery(table, columns, conflict)

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(query, rowValues(table, row)...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
		return nil
	})
}

// SelectAll returns every row of table owned by userID.
func (s *Store) SelectAll(ctx context.Context, table remote.Table, userID string) ([]remote.Row, error) {
	payload, ok := payloadColumns[table]
	if !ok {
		return nil, &remote.APIError{StatusCode: 404, Message: "unknown table " + string(table)}
	}
	if _, err := uuid.Parse(userID); err != nil {
		return []remote.Row{}, nil
	}

	columns := append([]string{"user_id::text"}, baseColumns[1:]...)
	columns = append(columns, payload...)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY translation, verse_index`,
		strings.Join(columns, ", "), pgx.Identifier{string(table)}.Sanitize())

	pgRows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer pgRows.Close()

	rows := []remote.Row{}
	for pgRows.Next() {
		var row remote.Row
		dest := []any{&row.UserID, &row.Translation, &row.VerseIndex, &row.Book, &row.Chapter, &row.Verse}
		switch table {
		case remote.TableBookmarks:
			dest = append(dest, &row.CreatedAt)
		case remote.TableHighlights:
			dest = append(dest, &row.Color, &row.CreatedAt)
		case remote.TableNotes:
			dest = append(dest, &row.Text, &row.CreatedAt, &row.UpdatedAt)
		}
		if err := pgRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rows = append(rows, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return rows, nil
}

func parseConflict(onConflict string) ([]string, error) {
	var columns []string
	for _, col := range strings.Split(onConflict, ",") {
		col = strings.TrimSpace(col)
		if !conflictColumns[col] {
			return nil, &remote.APIError{StatusCode: 400, Message: fmt.Sprintf("invalid conflict column %q", col)}
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, errors.New("empty conflict key")
	}
	return columns, nil
}

func upsertQuery(table remote.Table, columns, conflict []string) string {
	placeholders := make([]string, len(columns))
	var updates []string
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if !conflictColumns[col] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s`,
		pgx.Identifier{string(table)}.Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(conflict, ", "),
		strings.Join(updates, ", "))
}

// rowValues orders row fields to match baseColumns followed by the table's payload columns.
func rowValues(table remote.Table, row remote.Row) []any {
	values := []any{row.UserID, row.Translation, row.VerseIndex, row.Book, row.Chapter, row.Verse}
	switch table {
	case remote.TableBookmarks:
		values = append(values, timestampOrNow(row.CreatedAt))
	case remote.TableHighlights:
		values = append(values, row.Color, timestampOrNow(row.CreatedAt))
	case remote.TableNotes:
		values = append(values, row.Text, timestampOrNow(row.CreatedAt), timestampOrNow(row.UpdatedAt))
	}
	return values
}

func timestampOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
