// Package annotations stores per-verse bookmarks, highlights and notes.
//
// Every table holds at most one row per (translation, verse_index). Each mutator is
// a single conditional write against that key: insert if absent, replace if present,
// delete when the payload is empty.
//
// # Usage
//
//	repo := annotations.NewRepository(db)
//	bookmarked, err := repo.ToggleBookmark(verse.Ref())
//	color, err := repo.SetHighlight(verse.Ref(), "#FFE082")
//	text, err := repo.SaveNote(verse.Ref(), "  remember this  ")
package annotations

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lookupChunkSize keeps IN (...) lists under SQLite's bound-parameter limit.
const lookupChunkSize = 500

type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// keyConflict targets the (translation, verse_index) unique index shared by all annotation tables.
func keyConflict(updates ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "translation"}, {Name: "verse_index"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}
}

func whereKey(db *gorm.DB, translation string, verseIndex int) *gorm.DB {
	return db.Where("translation = ? AND verse_index = ?", translation, verseIndex)
}
