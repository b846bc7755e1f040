package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/galeri/internal/db"
	"github.com/templui/galeri/internal/repository"
	"github.com/templui/galeri/internal/service"
)

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed development data",
	}

	cmd.AddCommand(seedUserCmd())
	return cmd
}

func seedUserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Create a user, or reset the name and password of an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			users := service.NewUserService(repository.NewUserRepository(database))
			user, created, err := users.Upsert(name, email, password)
			if err != nil {
				return err
			}

			action := "updated"
			if created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s user %d <%s>\n", action, user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Test User", "display name")
	cmd.Flags().StringVar(&email, "email", "test@example.com", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password (8-72 characters)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
