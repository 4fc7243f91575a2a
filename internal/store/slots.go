package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/config"
)

var (
	ErrNotFound      = errors.New("slot not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Slots is a device-local key/value store. Every Put overwrites the whole value.
type Slots interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// Path is the file backing the store.
	Path() string
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg config.StorageConfig) (Slots, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.Dir, "notes.db"))
	case config.BackendJSON, "":
		return OpenJSONFile(filepath.Join(cfg.Dir, "notes.json")), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
