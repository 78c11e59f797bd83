// Package plan computes the daily reading window.
//
// The plan is anchored once at (start date, start index). Each calendar day after the
// anchor advances the window by one page of verses. Reads never move the anchor, so the
// same day always yields the same window.
package plan

import (
	"time"

	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

// Window is a contiguous, inclusive range of verse indices for one day.
type Window struct {
	Start     int `json:"start_index"`
	End       int `json:"end_index"`
	DayNumber int `json:"day_number"`
	// Exhausted is true when the window starts past the last verse.
	Exhausted bool `json:"exhausted"`
}

// DaysBetween returns the whole calendar days from "from" to "to", ignoring time of day.
// Each time is read as a date in its own location. The result is never negative.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return max(days, 0)
}

// Compute returns the reading window for today. maxIndex of 0 means the corpus size is
// unknown and the window is not clamped.
func Compute(anchor settingsstore.PlanAnchor, today time.Time, pageSize, maxIndex int) Window {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	days := DaysBetween(anchor.StartDate, today)
	start := anchor.StartIndex + days*pageSize
	end := start + pageSize - 1
	if maxIndex > 0 && end > maxIndex {
		end = maxIndex
	}

	return Window{
		Start:     start,
		End:       end,
		DayNumber: (start-anchor.StartIndex)/pageSize + 1,
		Exhausted: maxIndex > 0 && start > maxIndex,
	}
}

// DailyReading is the plan output for one translation and day.
type DailyReading struct {
	Translation string           `json:"translation"`
	Date        string           `json:"date"`
	Verses      []entities.Verse `json:"verses"`
	StartIndex  int              `json:"start_index"`
	EndIndex    int              `json:"end_index"`
	DayNumber   int              `json:"day_number"`
	TotalVerses int              `json:"total_verses"`
}

// Indices returns the verse indices of the reading in order.
func (r DailyReading) Indices() []int {
	indices := make([]int, len(r.Verses))
	for i, v := range r.Verses {
		indices[i] = v.VerseIndex
	}
	return indices
}
