package annotations

import (
	"gorm.io/gorm"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// ToggleBookmark removes the bookmark at ref if one exists, otherwise creates it.
// It returns true when the verse is bookmarked after the call.
func (r *Repository) ToggleBookmark(ref entities.VerseRef) (bool, error) {
	var bookmarked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := whereKey(tx, ref.Translation, ref.VerseIndex).Delete(&entities.Bookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			bookmarked = false
			return nil
		}

		bookmark := entities.Bookmark{
			Translation: ref.Translation,
			VerseIndex:  ref.VerseIndex,
			Book:        ref.Book,
			Chapter:     ref.Chapter,
			Verse:       ref.Verse,
			CreatedAt:   r.now(),
		}
		if err := tx.Create(&bookmark).Error; err != nil {
			return err
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		return false, database.Wrap("toggle bookmark", err)
	}
	return bookmarked, nil
}

// IsBookmarked reports whether a bookmark exists at (translation, verseIndex).
func (r *Repository) IsBookmarked(translation string, verseIndex int) (bool, error) {
	var count int64
	err := whereKey(r.db.Model(&entities.Bookmark{}), translation, verseIndex).Count(&count).Error
	if err != nil {
		return false, database.Wrap("get bookmark", err)
	}
	return count > 0, nil
}

// ListBookmarks returns every bookmark, newest first.
func (r *Repository) ListBookmarks() ([]entities.Bookmark, error) {
	bookmarks := []entities.Bookmark{}
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&bookmarks).Error; err != nil {
		return nil, database.Wrap("list bookmarks", err)
	}
	return bookmarks, nil
}
