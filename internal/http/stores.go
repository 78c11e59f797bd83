package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/plan"
	"github.com/mrlokans/dailyword/internal/settingsstore"
	"github.com/mrlokans/dailyword/internal/syncer"
)

// This file consolidates the store and service interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// TranslationResolver maps a requested translation to a supported one.
type TranslationResolver interface {
	ResolveTranslation(requested string) (string, error)
}

// VerseStore provides read access to verse text.
type VerseStore interface {
	ByIndex(translation string, index int) (*entities.Verse, error)
	ByReference(translation string, book, chapter, verse int) (*entities.Verse, error)
	Search(translation, query string) ([]entities.Verse, error)
	Count(translation string) (int64, error)
	Translations() ([]string, error)
}

// AnnotationStore provides the annotation mutators and queries.
type AnnotationStore interface {
	ToggleBookmark(ref entities.VerseRef) (bool, error)
	SetHighlight(ref entities.VerseRef, color string) (string, error)
	SaveNote(ref entities.VerseRef, text string) (string, error)
	GetInteractions(translation string, verseIndices []int) (entities.Interactions, error)
	ListBookmarks() ([]entities.Bookmark, error)
	ListHighlights() ([]entities.Highlight, error)
	ListNotes() ([]entities.Note, error)
}

// ReadingPlanner computes today's reading.
type ReadingPlanner interface {
	DailyReading(translation string) (plan.DailyReading, error)
}

// TranslationSettings reads and writes the preferred translation.
type TranslationSettings interface {
	TranslationResolver
	GetPreferredTranslationInfo() settingsstore.TranslationInfo
	SetPreferredTranslation(translation string) error
}

// ReminderService reads and updates the daily reminder.
type ReminderService interface {
	Get() (settingsstore.ReminderSettings, error)
	Update(settings settingsstore.ReminderSettings) error
}

// SyncRunner runs annotation sync inline.
type SyncRunner interface {
	Sync(ctx context.Context) syncer.Result
	Configured() bool
}

// SyncStatusReader exposes the last recorded sync outcome and schedule.
type SyncStatusReader interface {
	GetSyncStatus() settingsstore.SyncStatus
	GetSyncSchedule() string
}

// SyncScheduleInfo exposes the periodic scheduler state.
type SyncScheduleInfo interface {
	GetNextRunTime() *time.Time
	IsRunning() bool
	IsSyncing() bool
	RunNow()
	Reschedule() error
}

// SyncScheduleStore persists the periodic sync schedule override.
type SyncScheduleStore interface {
	GetSyncScheduleSource() string
	SetSyncSchedule(schedule string) error
}

// AuditReader provides the recorded history.
type AuditReader interface {
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues background work and reports its progress.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (string, error)
}
