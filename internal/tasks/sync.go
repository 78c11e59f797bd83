package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/dailyword/internal/syncer"
)

// Syncer runs one reconciliation.
type Syncer interface {
	Sync(ctx context.Context) syncer.Result
}

// SyncTask runs annotation sync in the background.
type SyncTask struct {
	Trigger string `json:"trigger"` // "api", "cli", "schedule"
}

// Config returns the queue configuration for sync tasks. A failed run is not retried:
// the next trigger starts a fresh run.
func (t SyncTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_now",
		MaxAttempts: 1,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncProcessor creates a processor function for SyncTask.
func SyncProcessor(s Syncer, timeout time.Duration) backlite.QueueProcessor[SyncTask] {
	return func(ctx context.Context, task SyncTask) error {
		if s == nil {
			return errors.New("syncer not configured")
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result := s.Sync(ctx)
		if !result.OK {
			return fmt.Errorf("sync (%s) failed during %s: %s", task.Trigger, result.Phase, result.Message)
		}

		log.Printf("[TASK] Sync (%s): %s", task.Trigger, result.Summary())
		return nil
	}
}

// NewSyncQueue creates a backlite queue for sync tasks.
func NewSyncQueue(s Syncer, timeout time.Duration) backlite.Queue {
	return backlite.NewQueue(SyncProcessor(s, timeout))
}
