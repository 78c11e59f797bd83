package settingsstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mrlokans/dailyword/internal/entities"
)

// DateLayout is the format of the persisted plan start date.
const DateLayout = "2006-01-02"

// PlanAnchor fixes day zero of the reading plan.
type PlanAnchor struct {
	StartDate  time.Time `json:"start_date"`
	StartIndex int       `json:"start_index"`
}

// GetPlanAnchor returns the persisted anchor. ok is false until EnsurePlanAnchor has run.
func (s *SettingsStore) GetPlanAnchor() (PlanAnchor, bool, error) {
	date, ok, err := s.state.Get(entities.StateKeyPlanStartDate)
	if err != nil || !ok {
		return PlanAnchor{}, false, err
	}
	index, ok, err := s.state.Get(entities.StateKeyPlanStartIndex)
	if err != nil || !ok {
		return PlanAnchor{}, false, err
	}
	anchor, err := parseAnchor(date, index)
	if err != nil {
		return PlanAnchor{}, false, err
	}
	return anchor, true, nil
}

// EnsurePlanAnchor returns the persisted anchor, creating it as (today, 1) the first
// time it is called. An existing anchor is never changed.
func (s *SettingsStore) EnsurePlanAnchor(today time.Time) (PlanAnchor, error) {
	date, err := s.state.SetIfAbsent(entities.StateKeyPlanStartDate, today.Format(DateLayout))
	if err != nil {
		return PlanAnchor{}, err
	}
	index, err := s.state.SetIfAbsent(entities.StateKeyPlanStartIndex, "1")
	if err != nil {
		return PlanAnchor{}, err
	}
	return parseAnchor(date, index)
}

func parseAnchor(date, index string) (PlanAnchor, error) {
	start, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return PlanAnchor{}, fmt.Errorf("invalid plan start date %q: %w", date, err)
	}
	startIndex, err := strconv.Atoi(index)
	if err != nil || startIndex < 1 {
		return PlanAnchor{}, fmt.Errorf("invalid plan start index %q", index)
	}
	return PlanAnchor{StartDate: start, StartIndex: startIndex}, nil
}
