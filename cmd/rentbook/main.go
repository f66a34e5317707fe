// Command rentbook runs the rental management API, Telegram bot and rent
// reminder scheduler, and provides database maintenance subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "rentbook"

// Version is overridden at build time with -ldflags
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Rental property management service",
		Long: `Rentbook tracks properties, rooms, tenants and rent payments.

Configuration is read from the environment (and a .env file when present).
Without DATABASE_URL all data is kept in memory for the life of the process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		seedCmd(),
		statsCmd(),
		tokenCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}
