package main

import (
	"github.com/spf13/cobra"
)

var searchFlags struct {
	limit  int
	asJSON bool
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cities by name",
	Long:  "Matches city names accent- and case-insensitively; prefix matches rank before word-start matches, which rank before substring matches.",
	Args:  cobra.ExactArgs(1),
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

		cities := idx.Search(args[0], searchFlags.limit)
		if searchFlags.asJSON {
			return printJSON(cities)
		}
		for _, c := range cities {
			cmd.Printf("%-28s %-20s %12s  (%.4f, %.4f)\n",
				c.Name, c.Country, formatPopulation(c.Population), c.Lat, c.Lng)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 10, "max results")
	searchCmd.Flags().BoolVar(&searchFlags.asJSON, "json", false, "emit results as JSON")
	rootCmd.AddCommand(searchCmd)
}
