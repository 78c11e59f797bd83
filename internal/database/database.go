package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/dailyword/internal/entities"
)

type Database struct {
	DB   *gorm.DB
	Path string
}

// Options tweak how the database is opened.
type Options struct {
	LogLevel logger.LogLevel
}

func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithOptions(dbPath, Options{LogLevel: logger.Warn})
}

// newLogger is gorm's default logger, except that absent rows are not reported.
func newLogger(w logger.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

func NewDatabaseWithOptions(dbPath string, opts Options) (*Database, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), opts.LogLevel),
	})
	if err != nil {
		return nil, &StorageError{Op: "open database", Err: err}
	}

	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, &StorageError{Op: "enable WAL", Err: err}
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Verse{},
		&entities.Bookmark{},
		&entities.Highlight{},
		&entities.Note{},
		&entities.AppState{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, &StorageError{Op: "migrate database", Err: err}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db, Path: dbPath}, nil
}

// dsn adds a busy timeout so concurrent writers wait instead of failing with SQLITE_BUSY.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	return sqlDB.Ping()
}
