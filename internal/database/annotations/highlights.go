package annotations

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// SetHighlight stores color for ref and returns it. An empty color removes the
// highlight and returns "". Replacing a highlight resets its created_at.
func (r *Repository) SetHighlight(ref entities.VerseRef, color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		err := whereKey(r.db, ref.Translation, ref.VerseIndex).Delete(&entities.Highlight{}).Error
		if err != nil {
			return "", database.Wrap("delete highlight", err)
		}
		return "", nil
	}

	highlight := entities.Highlight{
		Translation: ref.Translation,
		VerseIndex:  ref.VerseIndex,
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		Verse:       ref.Verse,
		Color:       color,
		CreatedAt:   r.now(),
	}
	err := r.db.Clauses(keyConflict("book", "chapter", "verse", "color", "created_at")).
		Create(&highlight).Error
	if err != nil {
		return "", database.Wrap("set highlight", err)
	}
	return color, nil
}

// GetHighlight returns the color at (translation, verseIndex), or "" when there is none.
func (r *Repository) GetHighlight(translation string, verseIndex int) (string, error) {
	var highlight entities.Highlight
	err := whereKey(r.db, translation, verseIndex).First(&highlight).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", database.Wrap("get highlight", err)
	}
	return highlight.Color, nil
}

// ListHighlights returns every highlight, newest first.
func (r *Repository) ListHighlights() ([]entities.Highlight, error) {
	highlights := []entities.Highlight{}
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&highlights).Error; err != nil {
		return nil, database.Wrap("list highlights", err)
	}
	return highlights, nil
}
