package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/galeri/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			return db.MigrateDown(database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			version, err := db.Version(database.DB, cfg.DBDriver)
			if err != nil {
				return fmt.Errorf("failed to read migration version: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "driver=%s version=%d\n", cfg.DBDriver, version)
			return nil
		},
	})

	return cmd
}
