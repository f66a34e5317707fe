package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/rentbook/internal/seed"
	"github.com/Kerhoff/rentbook/internal/service"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load properties, rooms, tenants and payments from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			if !cfg.UsesDatabase() {
				return errors.New("DATABASE_URL is required; an in-memory seed would be lost on exit")
			}

			f, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg, l)
			if err != nil {
				return err
			}
			defer store.Close()

			sum, err := seed.Apply(cmd.Context(), service.New(store, l), f, l)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d properties, %d rooms, %d tenants, %d payments\n",
				sum.Properties, sum.Rooms, sum.Tenants, sum.Payments)
			return nil
		},
	}
}
