package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/dailyword/internal/audit"
	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/crypto"
	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/database/annotations"
	auditrepo "github.com/mrlokans/dailyword/internal/database/audit"
	"github.com/mrlokans/dailyword/internal/database/state"
	"github.com/mrlokans/dailyword/internal/database/verses"
	"github.com/mrlokans/dailyword/internal/importers"
	"github.com/mrlokans/dailyword/internal/plan"
	"github.com/mrlokans/dailyword/internal/remote"
	"github.com/mrlokans/dailyword/internal/settingsstore"
	"github.com/mrlokans/dailyword/internal/syncer"
)

// App holds the local stores and services shared by the server and the CLI.
type App struct {
	Config      *config.Config
	Handle      *database.Handle
	DB          *database.Database
	Verses      *verses.Repository
	Annotations *annotations.Repository
	Settings    *settingsstore.SettingsStore
	Audit       *audit.Service
	Planner     *plan.Planner
	Importer    *importers.Pipeline
}

// Open opens the local database and builds every store on top of it.
func Open(cfg *config.Config) (*App, error) {
	handle := database.NewHandle(cfg.Database.Path)
	db, err := handle.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	verseRepo := verses.NewRepository(db.DB)
	settings := settingsstore.New(state.NewRepository(db.DB), settingsstore.Defaults{
		Translation:  cfg.Verses.Translation,
		SyncSchedule: cfg.Sync.Schedule,
	})
	if cfg.Sync.TokenKey != "" {
		sealer, err := crypto.NewSealerFromBase64(cfg.Sync.TokenKey)
		if err != nil {
			handle.Close()
			return nil, fmt.Errorf("invalid SYNC_TOKEN_KEY: %w", err)
		}
		settings.SealTokens(sealer)
	}
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	return &App{
		Config:      cfg,
		Handle:      handle,
		DB:          db,
		Verses:      verseRepo,
		Annotations: annotations.NewRepository(db.DB),
		Settings:    settings,
		Audit:       auditService,
		Planner:     plan.NewPlanner(verseRepo, settings, cfg.Plan.PageSize),
		Importer:    importers.NewPipeline(db, auditService),
	}, nil
}

// Close flushes pending audit writes and closes the database.
func (a *App) Close() {
	a.Audit.Wait()
	if err := a.Handle.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Bootstrap fills an empty verse store from the configured import path, or with the
// sample verses when no path is set and seeding is enabled.
func (a *App) Bootstrap(ctx context.Context) error {
	count, err := a.DB.VerseCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if path := a.Config.Verses.ImportPath; path != "" {
		log.Printf("Verse store is empty, importing %s", path)
		result, err := a.Importer.Import(ctx, path)
		if err != nil {
			return fmt.Errorf("initial verse import: %w", err)
		}
		log.Printf("Imported %d verses (%d rejected, %d duplicates)", result.Inserted, result.Rejected, result.Duplicates)
		return nil
	}

	if a.Config.Verses.SeedSample {
		return a.DB.SeedSampleVerses()
	}

	log.Printf("WARNING: Verse store is empty. Set VERSE_IMPORT_PATH or enable SEED_SAMPLE_VERSES.")
	return nil
}

// Reconciler connects the configured remote backend and returns a reconciler for it.
// The returned cleanup must be called once the reconciler is no longer used.
func (a *App) Reconciler(ctx context.Context) (*syncer.Reconciler, func(), error) {
	service, cleanup, err := NewRemote(ctx, a.Config.Sync, a.Settings)
	if err != nil {
		return nil, nil, err
	}

	return a.newReconciler(service), cleanup, nil
}

// reconcilerWithoutRemote returns a reconciler that reports sync as not configured.
func (a *App) reconcilerWithoutRemote() (*syncer.Reconciler, func(), error) {
	return a.newReconciler(nil), func() {}, nil
}

func (a *App) newReconciler(service remote.Service) *syncer.Reconciler {
	return syncer.NewReconciler(a.Annotations, service,
		syncer.WithRecorder(a.Settings),
		syncer.WithAuditor(a.Audit),
		syncer.WithBatchSize(a.Config.Sync.BatchSize),
	)
}
