package annotations

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// SaveNote trims text and stores it for ref, returning the stored text.
// Text that is empty after trimming removes the note and returns "".
// An existing note keeps its created_at; updated_at is always set to now.
func (r *Repository) SaveNote(ref entities.VerseRef, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		err := whereKey(r.db, ref.Translation, ref.VerseIndex).Delete(&entities.Note{}).Error
		if err != nil {
			return "", database.Wrap("delete note", err)
		}
		return "", nil
	}

	now := r.now()
	note := entities.Note{
		Translation: ref.Translation,
		VerseIndex:  ref.VerseIndex,
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		Verse:       ref.Verse,
		Text:        text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := r.db.Clauses(keyConflict("book", "chapter", "verse", "text", "updated_at")).
		Create(&note).Error
	if err != nil {
		return "", database.Wrap("save note", err)
	}
	return text, nil
}

// GetNote returns the note at (translation, verseIndex), or nil when there is none.
func (r *Repository) GetNote(translation string, verseIndex int) (*entities.Note, error) {
	var note entities.Note
	err := whereKey(r.db, translation, verseIndex).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap("get note", err)
	}
	return &note, nil
}

// ListNotes returns every note, most recently updated first.
func (r *Repository) ListNotes() ([]entities.Note, error) {
	notes := []entities.Note{}
	if err := r.db.Order("updated_at DESC").Order("id DESC").Find(&notes).Error; err != nil {
		return nil, database.Wrap("list notes", err)
	}
	return notes, nil
}
