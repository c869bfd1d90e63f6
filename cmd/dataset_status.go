package main

import (
	"github.com/spf13/cobra"

	"github.com/bolide-group/impact-cli/internal/dataset"
)

var datasetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the configured dataset sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest := dataset.DefaultManifest()
		if cfg.Dataset.Manifest != "" {
			m, err := dataset.LoadManifest(cfg.Dataset.Manifest)
			if err != nil {
				return err
			}
			manifest = m
		}

		for _, src := range manifest.Sources {
			cmd.Printf("%-20s %-10s %s\n", src.Name, src.Format, src.Location)
		}
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetStatusCmd)
}
