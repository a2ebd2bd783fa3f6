package main

import (
	"fmt"
	"os"

	"github.com/cloudflex/assistant/internal/db"
	"github.com/spf13/cobra"
)

var migrateDBURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the lead store schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDBURL, "db-url", "", "Database URL (default: DATABASE_URL)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	url := migrateDBURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required")
	}

	store, err := db.Open(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("failed to open lead store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Lead store schema is up to date") //nolint:errcheck
	return nil
}
