package config

// Default paths and values
const (
	// DefaultDatabasePath is the default path for the local verse and annotation database
	DefaultDatabasePath = "./dailyword.db"

	// DefaultTranslation is used when no preferred translation has been stored
	DefaultTranslation = "KJV"

	// DefaultPageSize is the number of verses in one day of the reading plan
	DefaultPageSize = 10

	// DefaultSyncBatchSize caps the number of rows sent in a single remote upsert
	DefaultSyncBatchSize = 500

	// DefaultSyncHTTPAttempts is how many times the REST backend sends one request
	// when it is rate limited or the server fails
	DefaultSyncHTTPAttempts = 3

	// DefaultAuditRetentionDays is how long sync, import and settings events are kept
	DefaultAuditRetentionDays = 30
)

type SyncBackend string

const (
	SyncBackendAuto      SyncBackend = "auto"
	SyncBackendNone      SyncBackend = "none"
	SyncBackendPostgREST SyncBackend = "postgrest" // Supabase-compatible REST endpoint
	SyncBackendPostgres  SyncBackend = "postgres"  // Direct Postgres connection
)
