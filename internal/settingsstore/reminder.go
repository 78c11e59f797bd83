package settingsstore

import (
	"errors"
	"strconv"

	"github.com/mrlokans/dailyword/internal/entities"
)

const (
	DefaultReminderHour   = 8
	DefaultReminderMinute = 0
)

// ErrInvalidReminderTime is returned for an hour outside 0-23 or a minute outside 0-59.
var ErrInvalidReminderTime = errors.New("reminder hour must be 0-23 and minute 0-59")

// ReminderSettings is the persisted daily reminder triple.
type ReminderSettings struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{Enabled: false, Hour: DefaultReminderHour, Minute: DefaultReminderMinute}
}

func (r ReminderSettings) Validate() error {
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return ErrInvalidReminderTime
	}
	return nil
}

// GetReminderSettings returns the persisted reminder settings. Missing or malformed
// fields fall back to their defaults individually; hour 0 is a valid value.
func (s *SettingsStore) GetReminderSettings() (ReminderSettings, error) {
	settings := DefaultReminderSettings()

	values, err := s.state.All()
	if err != nil {
		return settings, err
	}

	if v, ok := values[entities.StateKeyReminderEnabled]; ok {
		settings.Enabled = v == "true" || v == "1"
	}
	if v, ok := values[entities.StateKeyReminderHour]; ok {
		if hour, err := strconv.Atoi(v); err == nil && hour >= 0 && hour <= 23 {
			settings.Hour = hour
		}
	}
	if v, ok := values[entities.StateKeyReminderMinute]; ok {
		if minute, err := strconv.Atoi(v); err == nil && minute >= 0 && minute <= 59 {
			settings.Minute = minute
		}
	}
	return settings, nil
}

// SetReminderSettings validates and persists all three fields together.
func (s *SettingsStore) SetReminderSettings(settings ReminderSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.state.SetMany(map[string]string{
		entities.StateKeyReminderEnabled: strconv.FormatBool(settings.Enabled),
		entities.StateKeyReminderHour:    strconv.Itoa(settings.Hour),
		entities.StateKeyReminderMinute:  strconv.Itoa(settings.Minute),
	})
}
