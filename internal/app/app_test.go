package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"babymenu/internal/catalog"
	"babymenu/internal/config"
	"babymenu/internal/planner"
)

func testConfig(t *testing.T, store string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Store:    store,
		DataPath: filepath.Join(dir, "babymenu.json"),
		DBPath:   filepath.Join(dir, "babymenu.db"),
		LogLevel: "info",
	}
}

func TestNew(t *testing.T) {
	for _, store := range []string{config.StoreFile, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, store)

			a, err := New(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			child, err := a.Service.AddChild(ctx, "Mia", "girl", "2023-04-02")
			require.NoError(t, err)
			require.NoError(t, a.Close())

			_, err = os.Stat(a.DataPath())
			require.NoError(t, err, "expected the state to be persisted")

			reopened, err := New(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer reopened.Close()
			assert.Equal(t, child.ID, reopened.Service.Session().ChildID)
		})
	}
}

func TestNewWithCategories(t *testing.T) {
	cfg := testConfig(t, config.StoreFile)
	cfg.CategoriesPath = filepath.Join(t.TempDir(), "categories.yaml")
	yaml := "categories:\n  - id: fruits\n    min_age: 0\n  - id: other\n    min_age: 0\n"
	require.NoError(t, os.WriteFile(cfg.CategoriesPath, []byte(yaml), 0644))

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, []catalog.Category{catalog.Fruits, catalog.Other}, a.Service.Categories().Categories())

	cfg.CategoriesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to load categories")
}

func TestMigrateFileToSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StoreFile)

	a, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	child, err := a.Service.AddChild(ctx, "Mia", "girl", "2023-04-02")
	require.NoError(t, err)
	_, err = a.Service.AddFood(ctx, child.ID, "Apple", catalog.Fruits, planner.NeverConfirm)
	require.NoError(t, err)

	n, err := MigrateFileToSQLite(ctx, cfg, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	t.Run("RefusesOverwrite", func(t *testing.T) {
		_, err := MigrateFileToSQLite(ctx, cfg, false, zap.NewNop())
		assert.ErrorContains(t, err, "already holds 1 children")
	})

	t.Run("SQLiteSeesState", func(t *testing.T) {
		sqlCfg := *cfg
		sqlCfg.Store = config.StoreSQLite
		b, err := New(ctx, &sqlCfg, zap.NewNop())
		require.NoError(t, err)
		defer b.Close()

		foods, err := b.Service.Foods(ctx, child.ID)
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Apple", foods[0].Name)
	})
}
