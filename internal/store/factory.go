package store

import (
	"fmt"
	"log/slog"

	"spendwise/internal/store/file"
	"spendwise/internal/store/memory"
	"spendwise/internal/store/sqlite"
)

// BackendType selects the persistence backend.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds backend selection and backend-specific settings.
type Config struct {
	Type BackendType

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// Result carries the opened store and an optional cleanup to run at
// shutdown.
type Result struct {
	Store   Store
	Cleanup func() error
}

// Open builds the store for the configured backend.
func Open(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite store", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case FileBackend:
		dir := cfg.DataDirectory
		if dir == "" {
			dir = "data"
		}
		st, err := file.New(dir)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file store", "data_directory", dir)
		return &Result{Store: st}, nil

	default:
		logger.Info("Initialized memory store")
		return &Result{Store: memory.New()}, nil
	}
}
