// Command do holds the galeri developer and admin tasks:
//
//	do dev                     hot-reload server (air)
//	do migrate up|down|status  schema migrations
//	do seed user ...           create or update a login
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/galeri/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "do",
		Short:         "Development and admin tools for galeri",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
