package entities

// Verse is one row of scripture text. VerseIndex is dense per translation (1..N)
// and is the only key used by the reading plan and annotation lookups.
type Verse struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Translation string `gorm:"size:16;not null;uniqueIndex:idx_verses_unique,priority:1;index:idx_verses_ref,priority:1" json:"translation" yaml:"translation"`
	Book        int    `gorm:"not null;index:idx_verses_ref,priority:2" json:"book" yaml:"book"`
	Chapter     int    `gorm:"not null;index:idx_verses_ref,priority:3" json:"chapter" yaml:"chapter"`
	Number      int    `gorm:"column:verse;not null;index:idx_verses_ref,priority:4" json:"verse" yaml:"verse"`
	VerseIndex  int    `gorm:"not null;uniqueIndex:idx_verses_unique,priority:2" json:"verse_index" yaml:"verse_index"`
	Text        string `gorm:"type:text;not null" json:"text" yaml:"text"`
}

func (Verse) TableName() string {
	return "verses"
}

// Ref returns the annotation key and display location of the verse.
func (v Verse) Ref() VerseRef {
	return VerseRef{
		Translation: v.Translation,
		VerseIndex:  v.VerseIndex,
		Book:        v.Book,
		Chapter:     v.Chapter,
		Verse:       v.Number,
	}
}
