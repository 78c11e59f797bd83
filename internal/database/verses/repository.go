// Package verses provides read access to the scripture text.
//
// # Usage
//
//	repo := verses.NewRepository(db)
//	verse, err := repo.ByIndex("KJV", 1)
//	results, err := repo.Search("KJV", "light")
package verses

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/entities"
)

// SearchLimit caps the number of rows returned by Search.
const SearchLimit = 100

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Count returns the number of verses stored for a translation.
func (r *Repository) Count(translation string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Verse{}).Where("translation = ?", translation).Count(&count).Error
	if err != nil {
		return 0, database.Wrap("count verses", err)
	}
	return count, nil
}

// MaxIndex returns the highest verse index of a translation, or 0 when it has no verses.
func (r *Repository) MaxIndex(translation string) (int, error) {
	var max int
	err := r.db.Model(&entities.Verse{}).
		Where("translation = ?", translation).
		Select("COALESCE(MAX(verse_index), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, database.Wrap("max verse index", err)
	}
	return max, nil
}

// ByIndex returns the verse at index, or nil when it does not exist.
func (r *Repository) ByIndex(translation string, index int) (*entities.Verse, error) {
	var verse entities.Verse
	err := r.db.Where("translation = ? AND verse_index = ?", translation, index).First(&verse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap("get verse", err)
	}
	return &verse, nil
}

// InRange returns the verses with start <= verse_index <= end in ascending index order.
func (r *Repository) InRange(translation string, start, end int) ([]entities.Verse, error) {
	verses := []entities.Verse{}
	if start > end {
		return verses, nil
	}
	err := r.db.Where("translation = ? AND verse_index BETWEEN ? AND ?", translation, start, end).
		Order("verse_index ASC").
		Find(&verses).Error
	if err != nil {
		return nil, database.Wrap("get verse range", err)
	}
	return verses, nil
}

// ByReference returns the verse at book/chapter/verse, or nil when it does not exist.
func (r *Repository) ByReference(translation string, book, chapter, verse int) (*entities.Verse, error) {
	var v entities.Verse
	err := r.db.Where("translation = ? AND book = ? AND chapter = ? AND verse = ?", translation, book, chapter, verse).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Wrap("get verse by reference", err)
	}
	return &v, nil
}

// Search returns up to SearchLimit verses whose text contains query, case-insensitively,
// ordered by verse index. A blank query returns an empty slice without touching storage.
func (r *Repository) Search(translation, query string) ([]entities.Verse, error) {
	verses := []entities.Verse{}
	query = norm.NFC.String(strings.TrimSpace(query))
	if query == "" {
		return verses, nil
	}

	// SQLite LIKE is case-insensitive for ASCII.
	pattern := "%" + escapeLike(query) + "%"
	err := r.db.Where("translation = ? AND text LIKE ? ESCAPE '\\'", translation, pattern).
		Order("verse_index ASC").
		Limit(SearchLimit).
		Find(&verses).Error
	if err != nil {
		return nil, database.Wrap("search verses", err)
	}
	return verses, nil
}

// Translations lists the translations that have at least one verse.
func (r *Repository) Translations() ([]string, error) {
	var translations []string
	err := r.db.Model(&entities.Verse{}).Distinct("translation").Order("translation").Pluck("translation", &translations).Error
	if err != nil {
		return nil, database.Wrap("list translations", err)
	}
	return translations, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
