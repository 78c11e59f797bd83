package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/dailyword/internal/settingsstore"
	"github.com/mrlokans/dailyword/internal/syncer"
)

// Syncer runs one reconciliation.
type Syncer interface {
	Sync(ctx context.Context) syncer.Result
	Configured() bool
}

// ScheduleSource provides the current cron schedule; empty means manual only.
type ScheduleSource interface {
	GetSyncSchedule() string
}

// SyncScheduler manages periodic annotation sync
type SyncScheduler struct {
	syncer   Syncer
	schedule ScheduleSource
	timeout  time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	baseCtx    context.Context
	runCtx     context.Context
	cancelFunc context.CancelFunc
	stopped    chan struct{}
}

// NewSyncScheduler creates a new scheduler instance
func NewSyncScheduler(s Syncer, schedule ScheduleSource, timeout time.Duration) *SyncScheduler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &SyncScheduler{
		syncer:   s,
		schedule: schedule,
		timeout:  timeout,
		cron:     newCron(),
		baseCtx:  context.Background(),
		runCtx:   context.Background(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// Start begins the scheduler if sync is configured and a schedule is set
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	s.baseCtx = ctx

	if !s.syncer.Configured() {
		log.Printf("Sync scheduler: sync not configured, skipping")
		return nil
	}

	schedule := s.schedule.GetSyncSchedule()
	if schedule == "" {
		log.Printf("Sync scheduler: no schedule, sync runs on demand only")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)
	s.stopped = make(chan struct{})

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(schedule)
	log.Printf("Sync scheduler: started with schedule '%s' (%s). Next run: %v",
		schedule,
		settingsstore.GetCronDescription(schedule),
		nextRun)

	go func(stopped <-chan struct{}) {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stopped:
		}
	}(s.stopped)

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync to finish.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.cron.Remove(s.entryID)
	cronDone := s.cron.Stop()
	s.isRunning = false
	close(s.stopped)
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.runCtx = context.Background()
	s.mu.Unlock()

	// in-flight runs observe cancellation between phases
	cancel()
	<-cronDone.Done()

	log.Printf("Sync scheduler: stopped")
}

// Reschedule updates the schedule (call after settings change).
// The restarted scheduler keeps the context it was first started with.
func (s *SyncScheduler) Reschedule() error {
	s.Stop()
	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()
	return s.Start(ctx)
}

// RunNow triggers an immediate sync in the background
func (s *SyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active
func (s *SyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync is currently in progress
func (s *SyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next sync will occur
func (s *SyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			if t.IsZero() {
				t = entry.Schedule.Next(time.Now())
			}
			return &t
		}
	}
	return nil
}

func (s *SyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Sync: skipped (already syncing)")
		return
	}
	s.isSyncing = true
	parent := s.runCtx
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	log.Printf("Sync: starting scheduled run")
	s.syncer.Sync(ctx)
}
