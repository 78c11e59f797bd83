package database

import (
	"sync"

	"gorm.io/gorm/logger"
)

// Handle owns a lazily opened Database. The first Open call opens and migrates
// the file; later calls reuse the same connection. A failed open is not cached.
type Handle struct {
	path string
	opts Options

	mu sync.Mutex
	db *Database
}

func NewHandle(path string) *Handle {
	return &Handle{path: path, opts: Options{LogLevel: logger.Warn}}
}

func NewHandleWithOptions(path string, opts Options) *Handle {
	return &Handle{path: path, opts: opts}
}

// Open returns the shared Database, opening it on first use.
func (h *Handle) Open() (*Database, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	db, err := NewDatabaseWithOptions(h.path, h.opts)
	if err != nil {
		return nil, err
	}
	h.db = db
	return db, nil
}

// Close closes the Database if it was opened. The handle can be reopened afterwards.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func (h *Handle) Path() string {
	return h.path
}
