package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babymenu/internal/catalog"
	"babymenu/internal/database"
	"babymenu/internal/planner"
)

func sampleState() *planner.State {
	st := planner.NewState()
	st.Children = []planner.Child{{
		ID:        "c1",
		Name:      "Mia",
		Gender:    planner.Girl,
		BirthDate: "2023-04-02",
		CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}}
	st.Foods["c1"] = []string{"Apple", "Carrot"}
	st.FoodCategories["c1"] = map[string]catalog.Category{"Apple": catalog.Fruits, "Carrot": catalog.Vegetables}
	st.Overrides["c1"] = map[string]string{"2024-01-02": "Carrot"}
	st.FeedingHistory["c1"] = map[string]planner.FeedingDay{"2024-01-02": {Count: 1, Items: []string{"Carrot"}}}
	st.SelectedChildID = "c1"
	return st
}

// testRepository runs the shared contract every repository must honour.
func testRepository(t *testing.T, repo planner.Repository) {
	ctx := context.Background()

	t.Run("EmptyLoad", func(t *testing.T) {
		st, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, st.Children)
		assert.NotNil(t, st.Foods)
		assert.NotNil(t, st.Overrides)
		assert.NotNil(t, st.FeedingHistory)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		want := sampleState()
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		st := sampleState()
		st.Foods["c1"] = []string{"Apple"}
		require.NoError(t, repo.Save(ctx, st))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple"}, got.Foods["c1"])
	})

	t.Run("NoAliasing", func(t *testing.T) {
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		got.Overrides["c1"]["2024-01-03"] = "Apple"

		again, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, again.Overrides["c1"], "2024-01-03")
	})
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "babymenu.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	testRepository(t, store)

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "babymenu.json", entries[0].Name())
	})

	t.Run("CamelCaseKeys", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		for _, key := range []string{`"children"`, `"foodCategories"`, `"feedingHistory"`, `"selectedChildId"`, `"birthDate"`} {
			assert.Contains(t, string(data), key)
		}
	})

	t.Run("PartialRecord", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"children":[]}`), 0644))
		st, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, st.FoodCategories)
		assert.NotNil(t, st.FeedingHistory)
	})

	t.Run("Corrupt", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
		_, err := store.Load(context.Background())
		assert.ErrorContains(t, err, "failed to unmarshal state")
	})
}

func TestMemoryStore(t *testing.T) {
	testRepository(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "babymenu.db"))
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLiteStore(db.SQL)
	testRepository(t, store)

	var rows int
	require.NoError(t, db.SQL.QueryRow("SELECT COUNT(*) FROM planner_state").Scan(&rows))
	assert.Equal(t, 1, rows)
}
