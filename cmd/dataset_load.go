package main

import (
	"github.com/spf13/cobra"
)

var datasetLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load every manifest source and report the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := buildLoader()
		if err != nil {
			return err
		}

		ctx, cancel := datasetContext(cmd.Context())
		defer cancel()

		idx, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("loaded %d cities across %d grid cells\n", idx.Len(), idx.Cells())
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetLoadCmd)
}
