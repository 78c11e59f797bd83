package entities

import "time"

// AppState is a persisted scalar. Rows are overwritten on every write.
type AppState struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AppState) TableName() string {
	return "app_state"
}

// Known state keys
const (
	StateKeyPreferredTranslation = "preferred_translation"
	StateKeySampleSeededAt       = "sample_seeded_at"
	StateKeyVersesImportedAt     = "verses_imported_at"

	// Reading plan anchor, written once
	StateKeyPlanStartDate  = "plan_start_date"
	StateKeyPlanStartIndex = "plan_start_index"

	// Daily reminder
	StateKeyReminderEnabled = "reminder_enabled"
	StateKeyReminderHour    = "reminder_hour"
	StateKeyReminderMinute  = "reminder_minute"

	// Sync schedule override
	StateKeySyncSchedule = "sync_schedule"

	// Sync status
	StateKeyLastSyncAt      = "last_sync_at"
	StateKeyLastSyncStatus  = "last_sync_status"
	StateKeyLastSyncMessage = "last_sync_message"

	// Remote session
	StateKeySyncUserID       = "sync_user_id"
	StateKeySyncAccessToken  = "sync_access_token"
	StateKeySyncRefreshToken = "sync_refresh_token"
	StateKeySyncExpiresAt    = "sync_expires_at"
)
