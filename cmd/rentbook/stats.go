package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/rentbook/internal/handlers"
	"github.com/Kerhoff/rentbook/internal/service"
)

func statsCmd() *cobra.Command {
	var (
		seedFile string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg, l)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.New(store, l)
			if seedFile != "" {
				if err := applySeed(cmd.Context(), svc, seedFile, l); err != nil {
					return err
				}
			}
			stats, err := svc.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			_, err = out.Write([]byte(handlers.FormatStats(stats) + "\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML seed applied before computing (useful with the in-memory store)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
