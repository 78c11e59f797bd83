package plan

import (
	"fmt"
	"time"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

// VerseReader is the part of the verse store the planner reads.
type VerseReader interface {
	MaxIndex(translation string) (int, error)
	InRange(translation string, start, end int) ([]entities.Verse, error)
}

// AnchorStore persists the plan anchor.
type AnchorStore interface {
	EnsurePlanAnchor(today time.Time) (settingsstore.PlanAnchor, error)
}

// Planner turns the persisted anchor and the verse store into today's reading.
type Planner struct {
	verses   VerseReader
	anchors  AnchorStore
	pageSize int
	now      func() time.Time
}

func NewPlanner(verses VerseReader, anchors AnchorStore, pageSize int) *Planner {
	return &Planner{
		verses:   verses,
		anchors:  anchors,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// DailyReading returns today's reading for translation.
func (p *Planner) DailyReading(translation string) (DailyReading, error) {
	return p.ReadingFor(translation, p.now())
}

// ReadingFor returns the reading for the given day. The first call ever anchors the plan
// at that day.
func (p *Planner) ReadingFor(translation string, today time.Time) (DailyReading, error) {
	anchor, err := p.anchors.EnsurePlanAnchor(today)
	if err != nil {
		return DailyReading{}, fmt.Errorf("load plan anchor: %w", err)
	}

	maxIndex, err := p.verses.MaxIndex(translation)
	if err != nil {
		return DailyReading{}, err
	}

	window := Compute(anchor, today, p.pageSize, maxIndex)
	reading := DailyReading{
		Translation: translation,
		Date:        today.Format(settingsstore.DateLayout),
		Verses:      []entities.Verse{},
		StartIndex:  window.Start,
		EndIndex:    window.End,
		DayNumber:   window.DayNumber,
		TotalVerses: maxIndex,
	}
	if window.Exhausted || window.Start > window.End {
		return reading, nil
	}

	verses, err := p.verses.InRange(translation, window.Start, window.End)
	if err != nil {
		return DailyReading{}, err
	}
	reading.Verses = verses
	return reading, nil
}
