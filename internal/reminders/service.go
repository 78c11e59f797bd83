// Package reminders keeps the persisted daily reminder and the platform schedule in step.
package reminders

import (
	"fmt"
	"log"

	"github.com/mrlokans/dailyword/internal/settingsstore"
)

// Scheduler is the platform capability that delivers a daily recurring reminder.
type Scheduler interface {
	Schedule(hour, minute int) error
	CancelAll()
}

// Store persists the reminder settings.
type Store interface {
	GetReminderSettings() (settingsstore.ReminderSettings, error)
	SetReminderSettings(settingsstore.ReminderSettings) error
}

// SettingsAuditor records settings changes.
type SettingsAuditor interface {
	LogSettings(action, description string)
}

type Service struct {
	store     Store
	scheduler Scheduler
	auditor   SettingsAuditor
}

// NewService creates a reminder service. auditor may be nil.
func NewService(store Store, scheduler Scheduler, auditor SettingsAuditor) *Service {
	return &Service{store: store, scheduler: scheduler, auditor: auditor}
}

// Get returns the persisted settings, defaults included.
func (s *Service) Get() (settingsstore.ReminderSettings, error) {
	return s.store.GetReminderSettings()
}

// Update validates and persists settings, then replaces any pending reminder.
// Nothing is persisted or cancelled when validation fails.
func (s *Service) Update(settings settingsstore.ReminderSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.SetReminderSettings(settings); err != nil {
		return fmt.Errorf("failed to save reminder settings: %w", err)
	}
	if err := s.apply(settings); err != nil {
		return err
	}

	if s.auditor != nil {
		s.auditor.LogSettings("reminder_update", describe(settings))
	}
	return nil
}

// Restore re-applies the persisted settings, typically at startup.
func (s *Service) Restore() error {
	settings, err := s.store.GetReminderSettings()
	if err != nil {
		return fmt.Errorf("failed to load reminder settings: %w", err)
	}
	return s.apply(settings)
}

func (s *Service) apply(settings settingsstore.ReminderSettings) error {
	s.scheduler.CancelAll()
	if !settings.Enabled {
		log.Printf("Reminders: disabled")
		return nil
	}
	if err := s.scheduler.Schedule(settings.Hour, settings.Minute); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	log.Printf("Reminders: scheduled daily at %02d:%02d", settings.Hour, settings.Minute)
	return nil
}

func describe(settings settingsstore.ReminderSettings) string {
	if !settings.Enabled {
		return "Daily reminder disabled"
	}
	return fmt.Sprintf("Daily reminder set for %02d:%02d", settings.Hour, settings.Minute)
}
