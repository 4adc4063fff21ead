// Package app wires configuration, storage and the planner service together
// for the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"babymenu/internal/catalog"
	"babymenu/internal/config"
	"babymenu/internal/database"
	"babymenu/internal/planner"
	"babymenu/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	Service *planner.Service

	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
}

// New opens the configured store, loads the category table and starts the
// planner service. opts are passed on to the service after the logger.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...planner.Option) (*App, error) {
	categories := catalog.Default()
	if cfg.CategoriesPath != "" {
		t, err := catalog.Load(cfg.CategoriesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
		categories = t
	}

	a := &App{cfg: cfg, logger: logger}
	repo, err := a.openRepository()
	if err != nil {
		return nil, err
	}

	opts = append([]planner.Option{planner.WithLogger(logger)}, opts...)
	svc, err := planner.NewService(ctx, repo, categories, opts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to start planner: %w", err)
	}
	a.Service = svc

	logger.Debug("Application ready",
		zap.String("store", cfg.Store),
		zap.String("data_path", a.DataPath()),
		zap.Int("categories", len(categories.Categories())))
	return a, nil
}

func (a *App) openRepository() (planner.Repository, error) {
	switch a.cfg.Store {
	case config.StoreSQLite:
		db, err := database.NewDB(a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		return storage.NewSQLiteStore(db.SQL), nil
	case config.StoreFile, "":
		store, err := storage.NewFileStore(a.cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", a.cfg.Store)
	}
}

// DataPath is the file holding the planner state.
func (a *App) DataPath() string {
	if a.cfg.Store == config.StoreSQLite {
		return a.cfg.DBPath
	}
	return a.cfg.DataPath
}

// Close releases the database connection, if any. Later calls are no-ops.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	db := a.db
	a.db = nil
	return db.Close()
}

// MigrateFileToSQLite copies the JSON file state into the SQLite database.
// An existing database record with children is only replaced when force is
// set. It returns the number of children copied.
func MigrateFileToSQLite(ctx context.Context, cfg *config.Config, force bool, logger *zap.Logger) (int, error) {
	file, err := storage.NewFileStore(cfg.DataPath)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize file store: %w", err)
	}
	st, err := file.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read file state: %w", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	sqlite := storage.NewSQLiteStore(db.SQL)
	existing, err := sqlite.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read database state: %w", err)
	}
	if len(existing.Children) > 0 && !force {
		return 0, fmt.Errorf("database %s already holds %d children; use force to overwrite", cfg.DBPath, len(existing.Children))
	}

	if err := sqlite.Save(ctx, st); err != nil {
		return 0, fmt.Errorf("failed to write database state: %w", err)
	}
	logger.Info("State migrated to SQLite",
		zap.String("from", cfg.DataPath),
		zap.String("to", cfg.DBPath),
		zap.Int("children", len(st.Children)))
	return len(st.Children), nil
}
