package entities

import "time"

// VerseRef identifies a verse for annotation purposes. Book, chapter and verse
// are copied onto annotation rows for display; only (Translation, VerseIndex) is a key.
type VerseRef struct {
	Translation string `json:"translation"`
	VerseIndex  int    `json:"verse_index"`
	Book        int    `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
}

type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Translation string    `gorm:"size:16;not null;uniqueIndex:idx_bookmarks_key,priority:1" json:"translation"`
	VerseIndex  int       `gorm:"not null;uniqueIndex:idx_bookmarks_key,priority:2" json:"verse_index"`
	Book        int       `gorm:"not null" json:"book"`
	Chapter     int       `gorm:"not null" json:"chapter"`
	Verse       int       `gorm:"not null" json:"verse"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

type Highlight struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Translation string    `gorm:"size:16;not null;uniqueIndex:idx_highlights_key,priority:1" json:"translation"`
	VerseIndex  int       `gorm:"not null;uniqueIndex:idx_highlights_key,priority:2" json:"verse_index"`
	Book        int       `gorm:"not null" json:"book"`
	Chapter     int       `gorm:"not null" json:"chapter"`
	Verse       int       `gorm:"not null" json:"verse"`
	Color       string    `gorm:"size:32;not null" json:"color"` // Hex color code
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

type Note struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Translation string    `gorm:"size:16;not null;uniqueIndex:idx_notes_key,priority:1" json:"translation"`
	VerseIndex  int       `gorm:"not null;uniqueIndex:idx_notes_key,priority:2" json:"verse_index"`
	Book        int       `gorm:"not null" json:"book"`
	Chapter     int       `gorm:"not null" json:"chapter"`
	Verse       int       `gorm:"not null" json:"verse"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;index" json:"updated_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (Highlight) TableName() string {
	return "highlights"
}

func (Note) TableName() string {
	return "notes"
}

// Interactions is the annotation state of a set of verses within one translation.
type Interactions struct {
	Bookmarked map[int]bool   `json:"bookmarked"`
	Highlights map[int]string `json:"highlights"`
	Notes      map[int]string `json:"notes"`
}

func NewInteractions() Interactions {
	return Interactions{
		Bookmarked: make(map[int]bool),
		Highlights: make(map[int]string),
		Notes:      make(map[int]string),
	}
}
