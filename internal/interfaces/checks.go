package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/dailyword/internal/audit"
	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/database/annotations"
	"github.com/mrlokans/dailyword/internal/database/verses"
	"github.com/mrlokans/dailyword/internal/http"
	"github.com/mrlokans/dailyword/internal/importers"
	"github.com/mrlokans/dailyword/internal/plan"
	"github.com/mrlokans/dailyword/internal/reminders"
	"github.com/mrlokans/dailyword/internal/remote"
	"github.com/mrlokans/dailyword/internal/remote/memory"
	"github.com/mrlokans/dailyword/internal/remote/pgstore"
	"github.com/mrlokans/dailyword/internal/remote/postgrest"
	"github.com/mrlokans/dailyword/internal/scheduler"
	"github.com/mrlokans/dailyword/internal/settingsstore"
	"github.com/mrlokans/dailyword/internal/syncer"
	"github.com/mrlokans/dailyword/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// VerseStore implementations
var _ http.VerseStore = (*verses.Repository)(nil)
var _ plan.VerseReader = (*verses.Repository)(nil)

// AnnotationStore implementations
var _ http.AnnotationStore = (*annotations.Repository)(nil)
var _ syncer.LocalStore = (*annotations.Repository)(nil)

// State-backed settings
var _ plan.AnchorStore = (*settingsstore.SettingsStore)(nil)
var _ http.TranslationSettings = (*settingsstore.SettingsStore)(nil)
var _ http.SyncStatusReader = (*settingsstore.SettingsStore)(nil)
var _ reminders.Store = (*settingsstore.SettingsStore)(nil)
var _ syncer.StatusRecorder = (*settingsstore.SettingsStore)(nil)
var _ remote.SessionStore = (*settingsstore.SettingsStore)(nil)
var _ scheduler.ScheduleSource = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Remote Annotation Service
// =============================================================================

var _ remote.Service = (*postgrest.Client)(nil)
var _ remote.Service = (*pgstore.Store)(nil)
var _ remote.Service = (*memory.Service)(nil)

// =============================================================================
// Sync, Scheduling and Tasks
// =============================================================================

var _ http.SyncRunner = (*syncer.Reconciler)(nil)
var _ scheduler.Syncer = (*syncer.Reconciler)(nil)
var _ tasks.Syncer = (*syncer.Reconciler)(nil)
var _ http.SyncScheduleInfo = (*scheduler.SyncScheduler)(nil)
var _ http.SyncScheduleStore = (*settingsstore.SettingsStore)(nil)
var _ reminders.Scheduler = (*scheduler.ReminderScheduler)(nil)
var _ http.ReminderService = (*reminders.Service)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)

// =============================================================================
// Import Pipeline and Audit
// =============================================================================

var _ importers.VerseWriter = (*database.Database)(nil)
var _ tasks.VerseImporter = (*importers.Pipeline)(nil)
var _ importers.ImportAuditor = (*audit.Service)(nil)
var _ syncer.Auditor = (*audit.Service)(nil)
var _ reminders.SettingsAuditor = (*audit.Service)(nil)
var _ tasks.HistoryPruner = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.Pinger = (*database.Database)(nil)
