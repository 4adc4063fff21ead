package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"babymenu/internal/app"
	"babymenu/internal/config"
	"babymenu/internal/logging"
)

var migrateForce bool

var migrateCmd = &cobra.Command{
	Use:   "migrate-store",
	Short: "Copy the JSON file state into the SQLite database",
	Long: `Copy the state from BABYMENU_DATA_PATH into BABYMENU_DB_PATH so the
planner can run with BABYMENU_STORE=sqlite.`,
	Args: cobra.NoArgs,
	Run:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "Overwrite a database that already has children")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		fatalf("failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		fatalf("%v", err)
	}

	n, err := app.MigrateFileToSQLite(newContext(), cfg, migrateForce, logger)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d children from %s to %s.\n", n, cfg.DataPath, cfg.DBPath)
}
