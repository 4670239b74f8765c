// Package backend turns configuration into a concrete store implementation,
// so the rest of the application depends only on the store interfaces.
package backend

import (
	"fmt"
	"log/slog"

	"spendbook/internal/config"
	"spendbook/internal/store"
	"spendbook/internal/store/jsonfile"
	"spendbook/internal/store/sqlite"
)

// Result contains the store and a cleanup function to run at shutdown.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// New creates the store selected by cfg.DataBackend.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.DataBackend {
	case config.BackendJSONFile:
		st, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize jsonfile store: %w", err)
		}
		logger.Info("Initialized jsonfile backend", "data_dir", cfg.DataDir)
		return &Result{Store: st, Cleanup: st.Close}, nil

	case config.BackendSQLite:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
