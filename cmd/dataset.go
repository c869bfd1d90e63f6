package main

import (
	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect and preload the city dataset",
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}
