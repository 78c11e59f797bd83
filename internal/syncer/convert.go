package syncer

import (
	"strings"
	"time"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/remote"
)

func timePtr(t time.Time) *time.Time {
	t = t.UTC()
	return &t
}

func bookmarkRows(userID string, bookmarks []entities.Bookmark) []remote.Row {
	rows := make([]remote.Row, len(bookmarks))
	for i, b := range bookmarks {
		rows[i] = remote.Row{
			UserID:      userID,
			Translation: b.Translation,
			VerseIndex:  b.VerseIndex,
			Book:        b.Book,
			Chapter:     b.Chapter,
			Verse:       b.Verse,
			CreatedAt:   timePtr(b.CreatedAt),
		}
	}
	return rows
}

func highlightRows(userID string, highlights []entities.Highlight) []remote.Row {
	rows := make([]remote.Row, len(highlights))
	for i, h := range highlights {
		rows[i] = remote.Row{
			UserID:      userID,
			Translation: h.Translation,
			VerseIndex:  h.VerseIndex,
			Book:        h.Book,
			Chapter:     h.Chapter,
			Verse:       h.Verse,
			Color:       h.Color,
			CreatedAt:   timePtr(h.CreatedAt),
		}
	}
	return rows
}

func noteRows(userID string, notes []entities.Note) []remote.Row {
	rows := make([]remote.Row, len(notes))
	for i, n := range notes {
		rows[i] = remote.Row{
			UserID:      userID,
			Translation: n.Translation,
			VerseIndex:  n.VerseIndex,
			Book:        n.Book,
			Chapter:     n.Chapter,
			Verse:       n.Verse,
			Text:        n.Text,
			CreatedAt:   timePtr(n.CreatedAt),
			UpdatedAt:   timePtr(n.UpdatedAt),
		}
	}
	return rows
}

func validKey(row remote.Row) bool {
	return row.Translation != "" && row.VerseIndex >= 1
}

func present(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

func bookmarksFromRows(rows []remote.Row) ([]entities.Bookmark, int) {
	bookmarks := make([]entities.Bookmark, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !validKey(row) || !present(row.CreatedAt) {
			skipped++
			continue
		}
		bookmarks = append(bookmarks, entities.Bookmark{
			Translation: row.Translation,
			VerseIndex:  row.VerseIndex,
			Book:        row.Book,
			Chapter:     row.Chapter,
			Verse:       row.Verse,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return bookmarks, skipped
}

func highlightsFromRows(rows []remote.Row) ([]entities.Highlight, int) {
	highlights := make([]entities.Highlight, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		color := strings.TrimSpace(row.Color)
		if !validKey(row) || !present(row.CreatedAt) || color == "" {
			skipped++
			continue
		}
		highlights = append(highlights, entities.Highlight{
			Translation: row.Translation,
			VerseIndex:  row.VerseIndex,
			Book:        row.Book,
			Chapter:     row.Chapter,
			Verse:       row.Verse,
			Color:       color,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return highlights, skipped
}

// notesFromRows requires both timestamps; one is never substituted for the other.
func notesFromRows(rows []remote.Row) ([]entities.Note, int) {
	notes := make([]entities.Note, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		text := strings.TrimSpace(row.Text)
		if !validKey(row) || !present(row.CreatedAt) || !present(row.UpdatedAt) || text == "" {
			skipped++
			continue
		}
		notes = append(notes, entities.Note{
			Translation: row.Translation,
			VerseIndex:  row.VerseIndex,
			Book:        row.Book,
			Chapter:     row.Chapter,
			Verse:       row.Verse,
			Text:        text,
			CreatedAt:   row.CreatedAt.UTC(),
			UpdatedAt:   row.UpdatedAt.UTC(),
		})
	}
	return notes, skipped
}
