package annotations

import (
	"slices"

	"gorm.io/gorm"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

const applyBatchSize = 200

// ReplaceBookmarks upserts bookmarks in one transaction. Incoming rows overwrite any
// local row with the same key, including its timestamps. The input slice is not modified.
func (r *Repository) ReplaceBookmarks(bookmarks []entities.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	rows := slices.Clone(bookmarks)
	for i := range rows {
		rows[i].ID = 0
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(keyConflict("book", "chapter", "verse", "created_at")).
			CreateInBatches(&rows, applyBatchSize).Error
	})
	return database.Wrap("replace bookmarks", err)
}

// ReplaceHighlights upserts highlights in one transaction, overwriting local rows.
func (r *Repository) ReplaceHighlights(highlights []entities.Highlight) error {
	if len(highlights) == 0 {
		return nil
	}
	rows := slices.Clone(highlights)
	for i := range rows {
		rows[i].ID = 0
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(keyConflict("book", "chapter", "verse", "color", "created_at")).
			CreateInBatches(&rows, applyBatchSize).Error
	})
	return database.Wrap("replace highlights", err)
}

// ReplaceNotes upserts notes in one transaction, overwriting local rows.
func (r *Repository) ReplaceNotes(notes []entities.Note) error {
	if len(notes) == 0 {
		return nil
	}
	rows := slices.Clone(notes)
	for i := range rows {
		rows[i].ID = 0
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(keyConflict("book", "chapter", "verse", "text", "created_at", "updated_at")).
			CreateInBatches(&rows, applyBatchSize).Error
	})
	return database.Wrap("replace notes", err)
}

// Clear deletes every bookmark, highlight and note.
func (r *Repository) Clear() error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&entities.Bookmark{}, &entities.Highlight{}, &entities.Note{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return database.Wrap("clear annotations", err)
}
