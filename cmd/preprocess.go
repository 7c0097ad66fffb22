package main

import (
	"github.com/spf13/cobra"

	"github.com/stayscan/bnbetl/internal/pipeline"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Normalize the raw extracts into the seven cleaned tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(cfg)
		if err != nil {
			return err
		}
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}
