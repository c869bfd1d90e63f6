package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bolide-group/impact-cli/internal/export"
	"github.com/bolide-group/impact-cli/internal/geodesy"
	"github.com/bolide-group/impact-cli/internal/physics"
)

var exportFlags struct {
	diameter float64
	density  float64
	velocity float64
	angle    float64
	lat      float64
	lng      float64
	out      string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Simulate and export the damage zones as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := physics.Parameters{
			DiameterM:   exportFlags.diameter,
			DensityKgM3: exportFlags.density,
			VelocityKmS: exportFlags.velocity,
			AngleDeg:    exportFlags.angle,
			Target:      &geodesy.Point{Lat: exportFlags.lat, Lng: exportFlags.lng},
		}

		sim, err := buildSimulator()
		if err != nil {
			return err
		}

		ctx, cancel := datasetContext(cmd.Context())
		defer cancel()

		result, err := sim.Simulate(ctx, params)
		if err != nil {
			return err
		}

		data, err := export.Marshal(result)
		if err != nil {
			return err
		}

		if exportFlags.out == "" || exportFlags.out == "-" {
			cmd.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportFlags.out, data, 0o644); err != nil {
			return eris.Wrapf(err, "export: write %s", exportFlags.out)
		}
		cmd.Printf("wrote %s\n", exportFlags.out)
		return nil
	},
}

func init() {
	exportCmd.Flags().Float64Var(&exportFlags.diameter, "diameter", 0, "impactor diameter in meters (required)")
	exportCmd.Flags().Float64Var(&exportFlags.density, "density", 3000, "impactor density in kg/m3")
	exportCmd.Flags().Float64Var(&exportFlags.velocity, "velocity", 20, "impact velocity in km/s")
	exportCmd.Flags().Float64Var(&exportFlags.angle, "angle", 45, "impact angle in degrees, 90 is vertical")
	exportCmd.Flags().Float64Var(&exportFlags.lat, "lat", 0, "target latitude (required)")
	exportCmd.Flags().Float64Var(&exportFlags.lng, "lng", 0, "target longitude (required)")
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "-", "output file, - for stdout")
	_ = exportCmd.MarkFlagRequired("diameter")
	_ = exportCmd.MarkFlagRequired("lat")
	_ = exportCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(exportCmd)
}
