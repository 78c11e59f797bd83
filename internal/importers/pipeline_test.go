package importers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

type importEvent struct {
	source string
	count  int64
	err    error
}

type mockAuditor struct {
	events []importEvent
}

func (m *mockAuditor) LogImport(source, description string, versesCount int64, err error) {
	m.events = append(m.events, importEvent{source: source, count: versesCount, err: err})
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "verses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const jsonVerses = `[
  {"translation": "kjv", "book": 1, "chapter": 1, "verse": 1, "verse_index": 1, "text": "In the beginning God created the heaven and the earth."},
  {"translation": "KJV", "book": 1, "chapter": 1, "verse": 2, "verse_index": 2, "text": "  And the earth was without form, and void.  "},
  {"translation": "KJV", "book": 1, "chapter": 1, "verse": 3, "verse_index": 0, "text": "bad index"},
  {"translation": "", "book": 1, "chapter": 1, "verse": 4, "verse_index": 4, "text": "no translation"},
  {"translation": "KJV", "book": 1, "chapter": 1, "verse": 5, "verse_index": 5, "text": "   "}
]`

func TestPipeline_ImportJSON(t *testing.T) {
	db := setupTestDB(t)
	auditor := &mockAuditor{}
	pipeline := NewPipeline(db, auditor)

	result, err := pipeline.Import(context.Background(), writeFile(t, "kjv.json", jsonVerses))
	require.NoError(t, err)
	assert.Equal(t, Result{Read: 5, Inserted: 2, Rejected: 3}, result)

	var stored []entities.Verse
	require.NoError(t, db.DB.Order("verse_index").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "KJV", stored[0].Translation)
	assert.Equal(t, "And the earth was without form, and void.", stored[1].Text)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, importEvent{source: "json", count: 2}, auditor.events[0])
}

func TestPipeline_ImportIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	pipeline := NewPipeline(db, nil)
	path := writeFile(t, "kjv.json", jsonVerses)

	_, err := pipeline.Import(context.Background(), path)
	require.NoError(t, err)

	result, err := pipeline.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Inserted)
	assert.Equal(t, int64(2), result.Duplicates)

	count, err := db.VerseCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPipeline_ImportJSONObject(t *testing.T) {
	db := setupTestDB(t)
	path := writeFile(t, "web.json", `{"verses": [{"translation": "WEB", "book": 43, "chapter": 3, "verse": 16, "verse_index": 26137, "text": "For God so loved the world"}]}`)

	inserted, err := NewPipeline(db, nil).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
}

func TestPipeline_ImportYAML(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "sequence",
			file: "asv.yaml",
			content: `
- translation: ASV
  book: 1
  chapter: 1
  verse: 1
  verse_index: 1
  text: In the beginning God created the heavens and the earth.
- translation: ASV
  book: 1
  chapter: 1
  verse: 2
  verse_index: 2
  text: And the earth was waste and void.
`,
		},
		{
			name: "mapping",
			file: "asv.yml",
			content: `
verses:
  - {translation: ASV, book: 1, chapter: 1, verse: 1, verse_index: 1, text: "In the beginning"}
  - {translation: ASV, book: 1, chapter: 1, verse: 2, verse_index: 2, text: "And the earth"}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			result, err := NewPipeline(db, nil).Import(context.Background(), writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, int64(2), result.Inserted)
		})
	}
}

func TestPipeline_ImportSQLite(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "bible.sqlite")
	source, err := database.NewDatabase(sourcePath)
	require.NoError(t, err)
	_, err = source.InsertVerses(database.SampleVerses(), 0)
	require.NoError(t, err)
	require.NoError(t, source.Close())

	db := setupTestDB(t)
	result, err := NewPipeline(db, nil).Import(context.Background(), sourcePath)
	require.NoError(t, err)
	assert.Equal(t, int64(len(database.SampleVerses())), result.Inserted)

	var verse entities.Verse
	require.NoError(t, db.DB.Where("translation = ? AND verse_index = ?", "WEB", 3).First(&verse).Error)
	assert.Equal(t, 3, verse.Number)
	assert.Equal(t, "Sample text for Genesis 1:3 (WEB).", verse.Text)
}

func TestPipeline_UnsupportedFormat(t *testing.T) {
	auditor := &mockAuditor{}
	_, err := NewPipeline(setupTestDB(t), auditor).Import(context.Background(), writeFile(t, "kjv.txt", "text"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Len(t, auditor.events, 1)
	assert.Error(t, auditor.events[0].err)
}

func TestPipeline_InvalidFile(t *testing.T) {
	_, err := NewPipeline(setupTestDB(t), nil).Import(context.Background(), writeFile(t, "kjv.json", "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	_, err = NewPipeline(setupTestDB(t), nil).Import(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) InsertVerses([]entities.Verse, int) (int64, error) {
	return 0, errors.New("disk full")
}

func TestPipeline_WriterError(t *testing.T) {
	_, err := NewPipeline(failingWriter{}, nil).ImportVerses(context.Background(), []entities.Verse{
		{Translation: "KJV", VerseIndex: 1, Text: "text"},
	})
	assert.EqualError(t, err, "disk full")
}

func TestNormalize(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune
	v := Normalize(entities.Verse{ID: 9, Translation: " dra ", Text: " cafe\u0301 "})

	assert.Equal(t, uint(0), v.ID)
	assert.Equal(t, "DRA", v.Translation)
	assert.Equal(t, "caf\u00e9", v.Text)
}
