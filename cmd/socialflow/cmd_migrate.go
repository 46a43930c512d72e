package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deikotec/socialflow/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL document store migrations",
	Long:  `Connect to DB_POSTGRESQL_WRITE_DSN and apply every pending SQL migration bundled with the binary.`,
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Connect(database.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("retrieve sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(cmd.Context(), db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ migrations applied")
	return nil
}
