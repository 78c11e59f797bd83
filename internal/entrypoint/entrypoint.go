package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/config"
	http_controllers "github.com/mrlokans/dailyword/internal/http"
	"github.com/mrlokans/dailyword/internal/reminders"
	"github.com/mrlokans/dailyword/internal/scheduler"
	"github.com/mrlokans/dailyword/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then shut down within the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Daily Word v%s", version)

	app, err := Open(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	if err := app.Bootstrap(bgCtx); err != nil {
		log.Printf("WARNING: %v", err)
	}

	// Remote sync
	reconciler, closeRemote, err := app.Reconciler(bgCtx)
	if err != nil {
		log.Printf("WARNING: Sync disabled: %v", err)
		reconciler, closeRemote, _ = app.reconcilerWithoutRemote()
	}
	defer closeRemote()

	syncScheduler := scheduler.NewSyncScheduler(reconciler, app.Settings, cfg.Sync.Timeout)
	if err := syncScheduler.Start(bgCtx); err != nil {
		log.Printf("WARNING: Failed to start sync scheduler: %v", err)
	}

	// Daily reminders
	reminderScheduler := scheduler.NewReminderScheduler(nil, cfg.Plan.PageSize)
	reminderScheduler.Start()
	reminderService := reminders.NewService(app.Settings, reminderScheduler, app.Audit)
	if err := reminderService.Restore(); err != nil {
		log.Printf("WARNING: Failed to restore reminder: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:      app.DB,
		Verses:        app.Verses,
		Annotations:   app.Annotations,
		Planner:       app.Planner,
		Translations:  app.Settings,
		Reminders:     reminderService,
		Syncer:        reconciler,
		SyncStatus:    app.Settings,
		SyncScheduler: syncScheduler,
		SyncSchedules: app.Settings,
		Audit:         app.Audit,
		Version:       version,
	}

	// Background task queue
	var taskClient *tasks.Client
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewSyncQueue(reconciler, cfg.Sync.Timeout),
			tasks.NewImportVersesQueue(app.Importer),
			tasks.NewPruneHistoryQueue(app.Audit),
		)
		go taskClient.Start(bgCtx)

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, scheduler.DefaultMaintenanceSchedule,
			tasks.PruneHistoryTask{RetentionDays: cfg.Audit.RetentionDays})
		if err := maintenance.Start(); err != nil {
			log.Printf("WARNING: Failed to start maintenance scheduler: %v", err)
		}

		routerCfg.Tasks = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		reminderScheduler.Stop()
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancelBackground()
	}

	Serve(router, cfg, onShutdown)
}
