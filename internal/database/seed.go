package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/dailyword/internal/bible"
	"github.com/mrlokans/dailyword/internal/entities"
)

const sampleVersesPerTranslation = 10

// SampleVerses returns placeholder verses (Genesis 1:1-10) for every supported translation.
func SampleVerses() []entities.Verse {
	verses := make([]entities.Verse, 0, len(bible.Translations)*sampleVersesPerTranslation)
	for _, translation := range bible.Translations {
		for i := 1; i <= sampleVersesPerTranslation; i++ {
			verses = append(verses, entities.Verse{
				Translation: translation,
				Book:        1,
				Chapter:     1,
				Number:      i,
				VerseIndex:  i,
				Text:        fmt.Sprintf("Sample text for Genesis 1:%d (%s).", i, translation),
			})
		}
	}
	return verses
}

// InsertVerses bulk-inserts verses, ignoring rows whose (translation, verse_index) already exists.
// It returns the number of rows actually inserted.
func (d *Database) InsertVerses(verses []entities.Verse, batchSize int) (int64, error) {
	if len(verses) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	var inserted int64
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&verses, batchSize)
		if result.Error != nil {
			return result.Error
		}
		inserted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, Wrap("insert verses", err)
	}
	return inserted, nil
}

// SeedSampleVerses inserts the sample verses and records when it happened.
func (d *Database) SeedSampleVerses() error {
	inserted, err := d.InsertVerses(SampleVerses(), 0)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	state := entities.AppState{Key: entities.StateKeySampleSeededAt, Value: now}
	err = d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return Wrap("record sample seed", err)
	}

	log.Printf("Seeded %d sample verses", inserted)
	return nil
}

// VerseCount returns the number of verse rows across all translations.
func (d *Database) VerseCount() (int64, error) {
	var count int64
	if err := d.DB.Model(&entities.Verse{}).Count(&count).Error; err != nil {
		return 0, Wrap("count verses", err)
	}
	return count, nil
}
