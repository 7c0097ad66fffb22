package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stayscan/bnbetl/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the warehouse schema and tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := store.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer loader.Close() //nolint:errcheck

		if err := loader.Migrate(cmd.Context()); err != nil {
			return err
		}
		zap.L().Info("migrate: schema up to date", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
