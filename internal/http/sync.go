package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/settingsstore"
	"github.com/mrlokans/dailyword/internal/tasks"
)

type SyncController struct {
	syncer    SyncRunner
	status    SyncStatusReader
	scheduler SyncScheduleInfo
	schedules SyncScheduleStore
	audit     AuditReader
	tasks     TaskQueue
}

func NewSyncController(syncer SyncRunner, status SyncStatusReader, scheduler SyncScheduleInfo, schedules SyncScheduleStore, audit AuditReader, taskQueue TaskQueue) *SyncController {
	return &SyncController{
		syncer:    syncer,
		status:    status,
		scheduler: scheduler,
		schedules: schedules,
		audit:     audit,
		tasks:     taskQueue,
	}
}

// SyncStatusResponse describes sync availability and the last run.
type SyncStatusResponse struct {
	settingsstore.SyncStatus
	Configured  bool    `json:"configured"`
	Schedule    string  `json:"schedule"`
	Source      string  `json:"schedule_source,omitempty"`
	Description string  `json:"schedule_description"`
	NextRunAt   *string `json:"next_run_at,omitempty"`
	Scheduled   bool    `json:"scheduled"`
	Syncing     bool    `json:"syncing"`
}

// Run performs a sync inline, or enqueues it with ?async=true.
// POST /api/sync
func (sc *SyncController) Run(c *gin.Context) {
	if !sc.syncer.Configured() {
		respondError(c, http.StatusServiceUnavailable, "sync is not configured")
		return
	}

	if async, _ := strconv.ParseBool(c.Query("async")); async {
		if sc.tasks == nil {
			if sc.scheduler == nil {
				respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
				return
			}
			sc.scheduler.RunNow()
			respondAccepted(c, "sync started", nil)
			return
		}
		taskID, err := sc.tasks.Enqueue(tasks.SyncTask{Trigger: "api"})
		if err != nil {
			respondInternalError(c, err, "enqueue sync")
			return
		}
		respondAccepted(c, "sync enqueued", gin.H{"task_id": taskID})
		return
	}

	result := sc.syncer.Sync(c.Request.Context())
	status := http.StatusOK
	if !result.OK {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

// Status returns the last recorded outcome and the schedule.
// GET /api/sync/status
func (sc *SyncController) Status(c *gin.Context) {
	schedule := sc.status.GetSyncSchedule()
	response := SyncStatusResponse{
		SyncStatus:  sc.status.GetSyncStatus(),
		Configured:  sc.syncer.Configured(),
		Schedule:    schedule,
		Description: settingsstore.GetCronDescription(schedule),
	}
	if sc.schedules != nil {
		response.Source = sc.schedules.GetSyncScheduleSource()
	}

	if sc.scheduler != nil {
		if next := sc.scheduler.GetNextRunTime(); next != nil {
			formatted := next.Format("2006-01-02T15:04:05Z07:00")
			response.NextRunAt = &formatted
		}
		response.Scheduled = sc.scheduler.IsRunning()
		response.Syncing = sc.scheduler.IsSyncing()
	}

	c.JSON(http.StatusOK, response)
}

type ScheduleRequest struct {
	Schedule string `json:"schedule"`
}

// SetSchedule stores the periodic sync schedule and restarts the scheduler.
// An empty schedule clears the override and falls back to SYNC_SCHEDULE.
// PUT /api/sync/schedule
func (sc *SyncController) SetSchedule(c *gin.Context) {
	if sc.schedules == nil {
		respondError(c, http.StatusServiceUnavailable, "sync schedule is read-only")
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	schedule := strings.TrimSpace(req.Schedule)
	if schedule != "" {
		if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
			respondBadRequest(c, "invalid cron schedule: "+err.Error())
			return
		}
	}

	if err := sc.schedules.SetSyncSchedule(schedule); err != nil {
		respondInternalError(c, err, "set sync schedule")
		return
	}
	if sc.scheduler != nil {
		if err := sc.scheduler.Reschedule(); err != nil {
			respondInternalError(c, err, "reschedule sync")
			return
		}
	}

	sc.Status(c)
}

// SyncHistoryEntry is one recorded sync run with its counters decoded.
type SyncHistoryEntry struct {
	ID          uint           `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	OK          bool           `json:"ok"`
	Error       string         `json:"error,omitempty"`
	Details     map[string]any `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}

// History returns recorded sync runs, newest first.
// GET /api/sync/history?limit=&offset=
func (sc *SyncController) History(c *gin.Context) {
	limit, offset := parsePagination(c, 25, 100)

	events, total, err := sc.audit.GetEventsByType(entities.AuditEventSync, limit, offset)
	if err != nil {
		respondInternalError(c, err, "sync history")
		return
	}

	entries := make([]SyncHistoryEntry, len(events))
	for i, event := range events {
		entries[i] = SyncHistoryEntry{
			ID:          event.ID,
			Action:      event.Action,
			Description: event.Description,
			OK:          event.Succeeded(),
			Error:       event.ErrorMsg,
			Details:     event.MetadataMap(),
			CreatedAt:   event.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
