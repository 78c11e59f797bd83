// Package memory is an in-process remote.Service used by tests and local demos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/dailyword/internal/remote"
)

type key struct {
	userID      string
	translation string
	verseIndex  int
}

// Service keeps remote rows in maps. Failures can be injected per operation.
type Service struct {
	mu     sync.Mutex
	userID string
	tables map[remote.Table]map[key]remote.Row

	AuthErr   error
	UpsertErr map[remote.Table]error
	SelectErr map[remote.Table]error

	UpsertCalls []remote.Table
}

func New() *Service {
	return &Service{
		tables:    make(map[remote.Table]map[key]remote.Row),
		UpsertErr: make(map[remote.Table]error),
		SelectErr: make(map[remote.Table]error),
	}
}

// NewWithUser returns a Service whose anonymous identity is already established.
func NewWithUser(userID string) *Service {
	s := New()
	s.userID = userID
	return s
}

func (s *Service) Authenticate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AuthErr != nil {
		return "", &remote.AuthError{Err: s.AuthErr}
	}
	if s.userID == "" {
		s.userID = uuid.NewString()
	}
	return s.userID, nil
}

func (s *Service) Upsert(ctx context.Context, table remote.Table, rows []remote.Row, onConflict string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.UpsertCalls = append(s.UpsertCalls, table)
	if err := s.UpsertErr[table]; err != nil {
		return err
	}
	if s.tables[table] == nil {
		s.tables[table] = make(map[key]remote.Row)
	}
	for _, row := range rows {
		s.tables[table][key{row.UserID, row.Translation, row.VerseIndex}] = row
	}
	return nil
}

func (s *Service) SelectAll(ctx context.Context, table remote.Table, userID string) ([]remote.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SelectErr[table]; err != nil {
		return nil, err
	}
	rows := []remote.Row{}
	for k, row := range s.tables[table] {
		if k.userID == userID {
			rows = append(rows, row)
		}
	}
	sortRows(rows)
	return rows, nil
}

// Rows returns the rows stored in table for every user.
func (s *Service) Rows(table remote.Table) []remote.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]remote.Row, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows
}

// Put stores rows as if another device had pushed them.
func (s *Service) Put(table remote.Table, rows ...remote.Row) {
	_ = s.Upsert(context.Background(), table, rows, remote.ConflictKey)
}

// Reset clears stored rows and injected failures.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = make(map[remote.Table]map[key]remote.Row)
	s.UpsertErr = make(map[remote.Table]error)
	s.SelectErr = make(map[remote.Table]error)
	s.AuthErr = nil
	s.UpsertCalls = nil
}

func sortRows(rows []remote.Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		if rows[i].Translation != rows[j].Translation {
			return rows[i].Translation < rows[j].Translation
		}
		return rows[i].VerseIndex < rows[j].VerseIndex
	})
}
