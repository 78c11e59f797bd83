package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Syncer, cfg.Version)
	verses := NewVersesController(cfg.Verses, cfg.Annotations, cfg.Planner, cfg.Translations)
	annotations := NewAnnotationsController(cfg.Verses, cfg.Annotations, cfg.Translations)
	settings := NewSettingsController(cfg.Translations, cfg.Reminders)
	sync := NewSyncController(cfg.Syncer, cfg.SyncStatus, cfg.SyncScheduler, cfg.SyncSchedules, cfg.Audit, cfg.Tasks)

	router.GET("/health", health.Status)

	api := router.Group("/api")
	{
		api.GET("/reading/today", verses.Today)
		api.GET("/search", verses.Search)
		api.GET("/translations", verses.ListTranslations)
		api.GET("/verses/:translation", verses.GetVerseByReference)
		api.GET("/verses/:translation/:index", verses.GetVerse)

		api.POST("/verses/:translation/:index/bookmark", annotations.ToggleBookmark)
		api.PUT("/verses/:translation/:index/highlight", annotations.SetHighlight)
		api.PUT("/verses/:translation/:index/note", annotations.SaveNote)
		api.GET("/interactions", annotations.Interactions)
		api.GET("/bookmarks", annotations.ListBookmarks)
		api.GET("/highlights", annotations.ListHighlights)
		api.GET("/highlights/palette", annotations.HighlightPalette)
		api.GET("/notes", annotations.ListNotes)

		api.GET("/settings/translation", settings.GetTranslation)
		api.PUT("/settings/translation", settings.SetTranslation)
		api.GET("/settings/reminder", settings.GetReminder)
		api.PUT("/settings/reminder", settings.SetReminder)

		api.POST("/sync", sync.Run)
		api.GET("/sync/status", sync.Status)
		api.PUT("/sync/schedule", sync.SetSchedule)
		api.GET("/sync/history", sync.History)
	}

	// Task queue routes are only available when the queue is enabled
	if cfg.Tasks != nil {
		taskController := NewTasksController(cfg.Tasks)
		api.GET("/tasks/:id", taskController.GetTaskStatus)
		api.POST("/verses/import", taskController.ImportVerses)
	}

	return router
}
