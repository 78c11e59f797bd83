package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/dailyword/internal/config"
)

// HistoryPruner deletes audit events older than a retention window.
type HistoryPruner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// PruneHistoryTask drops sync, import and settings history past its retention.
type PruneHistoryTask struct {
	RetentionDays int `json:"retention_days"`
}

// Retention returns the effective retention window.
func (t PruneHistoryTask) Retention() time.Duration {
	days := t.RetentionDays
	if days <= 0 {
		days = config.DefaultAuditRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func (t PruneHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_history",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneHistoryProcessor returns the queue processor for PruneHistoryTask.
func PruneHistoryProcessor(pruner HistoryPruner) backlite.QueueProcessor[PruneHistoryTask] {
	return func(ctx context.Context, task PruneHistoryTask) error {
		if pruner == nil {
			return errors.New("history pruner not configured")
		}

		retention := task.Retention()
		deleted, err := pruner.DeleteOldEvents(retention)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}

		if deleted > 0 {
			log.Printf("[TASK] Pruned %d history events older than %v", deleted, retention)
		}
		return nil
	}
}

func NewPruneHistoryQueue(pruner HistoryPruner) backlite.Queue {
	return backlite.NewQueue(PruneHistoryProcessor(pruner))
}
