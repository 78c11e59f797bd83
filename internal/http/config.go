package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database     Pinger
	Verses       VerseStore
	Annotations  AnnotationStore
	Planner      ReadingPlanner
	Translations TranslationSettings

	// Reminders
	Reminders ReminderService

	// Sync
	Syncer        SyncRunner
	SyncStatus    SyncStatusReader
	SyncScheduler SyncScheduleInfo // optional
	SyncSchedules SyncScheduleStore
	Audit         AuditReader

	// Task queue (optional)
	Tasks TaskQueue

	// Application info
	Version string
}
