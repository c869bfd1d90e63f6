package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var nearestFlags struct {
	lat    float64
	lng    float64
	asJSON bool
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the city nearest a coordinate",
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

		city, ok := idx.Nearest(nearestFlags.lat, nearestFlags.lng)
		if !ok {
			return eris.New("nearest: dataset holds no cities")
		}

		if nearestFlags.asJSON {
			return printJSON(city)
		}
		cmd.Printf("%s", city.Name)
		if city.Country != "" {
			cmd.Printf(", %s", city.Country)
		}
		cmd.Printf(" (%.4f, %.4f) population %s\n", city.Lat, city.Lng, formatPopulation(city.Population))
		return nil
	},
}

func init() {
	nearestCmd.Flags().Float64Var(&nearestFlags.lat, "lat", 0, "latitude")
	nearestCmd.Flags().Float64Var(&nearestFlags.lng, "lng", 0, "longitude")
	nearestCmd.Flags().BoolVar(&nearestFlags.asJSON, "json", false, "emit the city as JSON")
	_ = nearestCmd.MarkFlagRequired("lat")
	_ = nearestCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(nearestCmd)
}
