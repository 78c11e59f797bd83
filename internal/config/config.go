package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Verses
		Plan
		Sync
		Tasks
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Verses struct {
		ImportPath  string // Bulk verse source copied in at first run (.json, .yaml, .db)
		SeedSample  bool   // Seed sample verses when the store is empty and no import path is set
		Translation string // Default translation when none has been chosen
	}
	Plan struct {
		PageSize int
	}
	Sync struct {
		BackendName SyncBackend
		URL         string // Supabase/PostgREST base URL
		AnonKey     string
		DatabaseURL string // Postgres DSN for the direct backend
		Schedule    string // Cron format, empty disables periodic sync
		TokenKey    string // Base64 AES-256 key; when set, stored session tokens are encrypted
		BatchSize   int
		Timeout     time.Duration

		HTTPAttempts int // Attempts per REST request on 429/5xx; 1 disables retries
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Audit struct {
		RetentionDays int
	}
)

// Backend resolves the effective sync backend from the configured name and credentials.
// It returns SyncBackendNone when the chosen backend is missing what it needs.
func (s Sync) Backend() SyncBackend {
	switch s.BackendName {
	case SyncBackendNone:
		return SyncBackendNone
	case SyncBackendPostgREST:
		if s.URL != "" && s.AnonKey != "" {
			return SyncBackendPostgREST
		}
		return SyncBackendNone
	case SyncBackendPostgres:
		if s.DatabaseURL != "" {
			return SyncBackendPostgres
		}
		return SyncBackendNone
	}

	// auto
	if s.URL != "" && s.AnonKey != "" {
		return SyncBackendPostgREST
	}
	if s.DatabaseURL != "" {
		return SyncBackendPostgres
	}
	return SyncBackendNone
}

// Configured reports whether remote sync is available at all.
func (s Sync) Configured() bool {
	return s.Backend() != SyncBackendNone
}

// loadDotEnv reads .env.<APP_ENV> and .env if present. Variables that are already set win.
func loadDotEnv() {
	if appEnv := os.Getenv("APP_ENV"); appEnv != "" {
		if err := godotenv.Load(".env." + appEnv); err == nil {
			log.Printf("Loaded .env.%s", appEnv)
		}
	}
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded .env")
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("verse_import_path", "")
	v.SetDefault("seed_sample_verses", true)
	v.SetDefault("default_translation", DefaultTranslation)
	v.SetDefault("plan_page_size", DefaultPageSize)

	// Sync defaults
	v.SetDefault("sync_backend", string(SyncBackendAuto))
	v.SetDefault("supabase_url", "")
	v.SetDefault("supabase_anon_key", "")
	v.SetDefault("sync_database_url", "")
	v.SetDefault("sync_schedule", "") // Manual only
	v.SetDefault("sync_batch_size", DefaultSyncBatchSize)
	v.SetDefault("sync_http_attempts", DefaultSyncHTTPAttempts)
	v.SetDefault("sync_timeout", "2m")
	v.SetDefault("sync_token_key", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("audit_retention_days", DefaultAuditRetentionDays)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Verses: Verses{
			ImportPath:  v.GetString("VERSE_IMPORT_PATH"),
			SeedSample:  v.GetBool("SEED_SAMPLE_VERSES"),
			Translation: v.GetString("DEFAULT_TRANSLATION"),
		},
		Plan: Plan{
			PageSize: v.GetInt("PLAN_PAGE_SIZE"),
		},
		Sync: Sync{
			BackendName: SyncBackend(v.GetString("SYNC_BACKEND")),
			URL:         v.GetString("SUPABASE_URL"),
			AnonKey:     v.GetString("SUPABASE_ANON_KEY"),
			DatabaseURL: v.GetString("SYNC_DATABASE_URL"),
			Schedule:    v.GetString("SYNC_SCHEDULE"),
			TokenKey:    v.GetString("SYNC_TOKEN_KEY"),
			BatchSize:   v.GetInt("SYNC_BATCH_SIZE"),
			Timeout:     v.GetDuration("SYNC_TIMEOUT"),

			HTTPAttempts: v.GetInt("SYNC_HTTP_ATTEMPTS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
