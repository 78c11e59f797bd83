package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// VerseImporter loads a bulk verse source into the verse store.
type VerseImporter interface {
	ImportFile(ctx context.Context, path string) (int64, error)
}

// ImportVersesTask imports verses from a .json, .yaml or sqlite file.
type ImportVersesTask struct {
	Path string `json:"path"`
}

// Config returns the queue configuration for verse import tasks.
func (t ImportVersesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_verses",
		MaxAttempts: 2,
		Backoff:     30 * time.Second,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportVersesProcessor creates a processor function for ImportVersesTask.
func ImportVersesProcessor(importer VerseImporter) backlite.QueueProcessor[ImportVersesTask] {
	return func(ctx context.Context, task ImportVersesTask) error {
		if importer == nil {
			return errors.New("verse importer not configured")
		}
		if task.Path == "" {
			return errors.New("import path is required")
		}

		inserted, err := importer.ImportFile(ctx, task.Path)
		if err != nil {
			return fmt.Errorf("import verses from %s: %w", task.Path, err)
		}

		log.Printf("[TASK] Imported %d verses from %s", inserted, task.Path)
		return nil
	}
}

// NewImportVersesQueue creates a backlite queue for verse import tasks.
func NewImportVersesQueue(importer VerseImporter) backlite.Queue {
	return backlite.NewQueue(ImportVersesProcessor(importer))
}
