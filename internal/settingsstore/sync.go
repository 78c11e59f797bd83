package settingsstore

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/remote"
)

const (
	SyncStatusSuccess   = "success"
	SyncStatusFailed    = "failed"
	SyncStatusCancelled = "cancelled"
)

// SyncStatus represents the outcome of the last sync run
type SyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"` // last successful run
	Status     string     `json:"status,omitempty"`       // "success", "failed", "cancelled", ""
	Message    string     `json:"message,omitempty"`
}

// GetSyncStatus returns the last recorded sync status
func (s *SettingsStore) GetSyncStatus() SyncStatus {
	status := SyncStatus{}

	if value, ok := s.get(entities.StateKeyLastSyncAt); ok && value != "" {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			status.LastSyncAt = &ts
		}
	}
	status.Status, _ = s.get(entities.StateKeyLastSyncStatus)
	status.Message, _ = s.get(entities.StateKeyLastSyncMessage)

	return status
}

// SetSyncStatus records a finished run. last_sync_at only moves on success.
func (s *SettingsStore) SetSyncStatus(status, message string, at time.Time) error {
	values := map[string]string{
		entities.StateKeyLastSyncStatus:  status,
		entities.StateKeyLastSyncMessage: message,
	}
	if status == SyncStatusSuccess {
		values[entities.StateKeyLastSyncAt] = at.UTC().Format(time.RFC3339)
	}
	return s.state.SetMany(values)
}

// GetSyncSchedule returns the cron schedule for periodic sync (database > env > "").
// An empty schedule means sync only runs on demand.
func (s *SettingsStore) GetSyncSchedule() string {
	if value, ok := s.get(entities.StateKeySyncSchedule); ok && value != "" {
		return value
	}
	return s.defaults.SyncSchedule
}

// GetSyncScheduleSource returns the source of the schedule setting
func (s *SettingsStore) GetSyncScheduleSource() string {
	if value, ok := s.get(entities.StateKeySyncSchedule); ok && value != "" {
		return SourceDatabase
	}
	if s.defaults.SyncSchedule != "" {
		return SourceEnvironment
	}
	return SourceDefault
}

// SetSyncSchedule validates and saves the schedule. An empty schedule clears the override.
func (s *SettingsStore) SetSyncSchedule(schedule string) error {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return s.state.Delete(entities.StateKeySyncSchedule)
	}
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.state.Set(entities.StateKeySyncSchedule, schedule)
}

// LoadSession implements remote.SessionStore.
func (s *SettingsStore) LoadSession() (remote.Session, bool, error) {
	values, err := s.state.All()
	if err != nil {
		return remote.Session{}, false, err
	}
	userID := values[entities.StateKeySyncUserID]
	if userID == "" {
		return remote.Session{}, false, nil
	}

	accessToken, err := s.openToken(values[entities.StateKeySyncAccessToken])
	if err != nil {
		log.Printf("Settings: stored sync session is unreadable, signing in again: %v", err)
		return remote.Session{}, false, nil
	}
	refreshToken, err := s.openToken(values[entities.StateKeySyncRefreshToken])
	if err != nil {
		log.Printf("Settings: stored sync session is unreadable, signing in again: %v", err)
		return remote.Session{}, false, nil
	}

	session := remote.Session{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if expires := values[entities.StateKeySyncExpiresAt]; expires != "" {
		if ts, err := time.Parse(time.RFC3339, expires); err == nil {
			session.ExpiresAt = ts
		}
	}
	return session, true, nil
}

// SaveSession implements remote.SessionStore.
func (s *SettingsStore) SaveSession(session remote.Session) error {
	expires := ""
	if !session.ExpiresAt.IsZero() {
		expires = session.ExpiresAt.UTC().Format(time.RFC3339)
	}
	accessToken, err := s.sealToken(session.AccessToken)
	if err != nil {
		return err
	}
	refreshToken, err := s.sealToken(session.RefreshToken)
	if err != nil {
		return err
	}
	return s.state.SetMany(map[string]string{
		entities.StateKeySyncUserID:       session.UserID,
		entities.StateKeySyncAccessToken:  accessToken,
		entities.StateKeySyncRefreshToken: refreshToken,
		entities.StateKeySyncExpiresAt:    expires,
	})
}

func (s *SettingsStore) sealToken(token string) (string, error) {
	if s.sealer == nil {
		return token, nil
	}
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return "", fmt.Errorf("seal sync token: %w", err)
	}
	return sealed, nil
}

func (s *SettingsStore) openToken(value string) (string, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.Open(value)
}

// ClearSession implements remote.SessionStore.
func (s *SettingsStore) ClearSession() error {
	return s.state.Delete(
		entities.StateKeySyncUserID,
		entities.StateKeySyncAccessToken,
		entities.StateKeySyncRefreshToken,
		entities.StateKeySyncExpiresAt,
	)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "":
		return "Manual only"
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next sync will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
