package acceptance_tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"babymenu/internal/app"
	"babymenu/internal/catalog"
	"babymenu/internal/config"
	"babymenu/internal/planner"
)

// Wednesday; its week runs Jan 7 to Jan 13.
var now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func weekFoods(t *testing.T, a *app.App, childID string) []string {
	t.Helper()
	plan, err := a.Service.Week(context.Background(), childID, 0)
	if err != nil {
		t.Fatalf("Failed to resolve week: %v", err)
	}
	var foods []string
	for _, d := range plan.Days {
		foods = append(foods, d.Food)
	}
	return foods
}

func assertFoods(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("Expected %d days, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("Day %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	// 1. Set up a temporary directory for storage
	tempDir, err := os.MkdirTemp("", "acceptance_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := &config.Config{
		Store:    config.StoreFile,
		DataPath: filepath.Join(tempDir, "babymenu.json"),
		DBPath:   filepath.Join(tempDir, "babymenu.db"),
		LogLevel: "info",
	}

	// --- 2. Step 1: Build a catalog on the file store ---
	t.Log("--- Step 1: Child and catalog ---")
	a, err := app.New(ctx, cfg, logger, planner.WithClock(clock))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	child, err := a.Service.AddChild(ctx, "mia", "girl", "2023-04-02")
	if err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	for _, food := range []string{"Apple", "Banana", "Pear"} {
		recalculated, err := a.Service.AddFood(ctx, child.ID, food, catalog.Fruits, planner.NeverConfirm)
		if err != nil {
			t.Fatalf("AddFood %s failed: %v", food, err)
		}
		if recalculated {
			t.Errorf("Expected no recalculation without manual picks")
		}
	}
	assertFoods(t, []string{"Banana", "Pear", "Apple", "Banana", "Pear", "Apple", "Banana"}, weekFoods(t, a, child.ID))

	// --- 3. Step 2: Manual pick, then a catalog change with consent ---
	t.Log("--- Step 2: Override and reconciliation ---")
	if err := a.Service.SetOverride(ctx, child.ID, now.AddDate(0, 0, 1), "Pear"); err != nil {
		t.Fatalf("SetOverride failed: %v", err)
	}
	recalculated, err := a.Service.AddFood(ctx, child.ID, "Mango", catalog.Fruits, planner.AlwaysConfirm)
	if err != nil {
		t.Fatalf("AddFood Mango failed: %v", err)
	}
	if !recalculated {
		t.Fatalf("Expected the rest of the week to be recalculated")
	}
	after := []string{"Mango", "Apple", "Banana", "Pear", "Mango", "Apple", "Banana"}
	assertFoods(t, after, weekFoods(t, a, child.ID))
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// --- 4. Step 3: Move the state into SQLite ---
	t.Log("--- Step 3: Migrating to SQLite ---")
	n, err := app.MigrateFileToSQLite(ctx, cfg, false, logger)
	if err != nil {
		t.Fatalf("Migration failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 migrated child, got %d", n)
	}

	cfg.Store = config.StoreSQLite
	a, err = app.New(ctx, cfg, logger, planner.WithClock(clock))
	if err != nil {
		t.Fatalf("Failed to reopen app on SQLite: %v", err)
	}
	defer a.Close()

	current, err := a.Service.CurrentChild(ctx)
	if err != nil {
		t.Fatalf("Expected the selected child to survive the migration: %v", err)
	}
	if current.ID != child.ID || current.Name != "Mia" {
		t.Errorf("Expected Mia (%s), got %s (%s)", child.ID, current.Name, current.ID)
	}
	assertFoods(t, after, weekFoods(t, a, child.ID))

	// --- 5. Step 4: Feeding history ---
	t.Log("--- Step 4: Feeding ---")
	today, err := a.Service.Today(ctx, child.ID)
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	day, err := a.Service.RecordFeeding(ctx, child.ID, today.Food)
	if err != nil {
		t.Fatalf("RecordFeeding failed: %v", err)
	}
	if day.Count != 1 || day.Items[0] != "Pear" {
		t.Errorf("Expected one Pear feeding, got %+v", day)
	}
	if _, err := app.MigrateFileToSQLite(ctx, cfg, false, logger); err == nil {
		t.Error("Expected a second migration without force to be refused")
	}
}
