package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bolide-group/impact-cli/internal/geodesy"
	"github.com/bolide-group/impact-cli/internal/impact"
	"github.com/bolide-group/impact-cli/internal/physics"
)

var simulateFlags struct {
	diameter float64
	density  float64
	velocity float64
	angle    float64
	lat      float64
	lng      float64
	top      int
	asJSON   bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one impact simulation",
	Long:  "Computes impact energy, crater size, damage radii and seismic magnitude. With --lat/--lng it also reports the nearest city and zone population totals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := physics.Parameters{
			DiameterM:   simulateFlags.diameter,
			DensityKgM3: simulateFlags.density,
			VelocityKmS: simulateFlags.velocity,
			AngleDeg:    simulateFlags.angle,
		}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			params.Target = &geodesy.Point{Lat: simulateFlags.lat, Lng: simulateFlags.lng}
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

		if simulateFlags.asJSON {
			if simulateFlags.top > 0 {
				result.AffectedCities = impact.TopN(result.AffectedCities, simulateFlags.top)
			}
			return printJSON(result)
		}
		printResult(cmd, result)
		return nil
	},
}

func printResult(cmd *cobra.Command, r *impact.SimulationResult) {
	cmd.Printf("Impact energy:     %.3g Mt TNT (%.3g J)\n", r.EnergyMt, r.EnergyJ)
	cmd.Printf("Crater diameter:   %.2f km\n", r.CraterKm)
	cmd.Printf("Blast radius:      %.2f km\n", r.BlastRadiusKm)
	cmd.Printf("Thermal radius:    %.2f km\n", r.ThermalRadiusKm)
	cmd.Printf("Seismic magnitude: %.1f\n", r.SeismicMagnitude)

	if r.Target == nil {
		return
	}
	if r.NearestCity != nil {
		cmd.Printf("Nearest city:      %s", r.NearestCity.Name)
		if r.NearestCity.Country != "" {
			cmd.Printf(", %s", r.NearestCity.Country)
		}
		cmd.Printf("\n")
	}
	cmd.Printf("Affected people:   %s\n", formatPopulation(r.PopulationAffected))
	if r.ZonePopulations != nil {
		cmd.Printf("  crater zone:     %s\n", formatPopulation(r.ZonePopulations.Crater))
		cmd.Printf("  blast zone:      %s\n", formatPopulation(r.ZonePopulations.Blast))
		cmd.Printf("  thermal zone:    %s\n", formatPopulation(r.ZonePopulations.Thermal))
	}

	cities := r.AffectedCities
	if simulateFlags.top > 0 {
		cities = impact.TopN(cities, simulateFlags.top)
	}
	for _, c := range cities {
		cmd.Printf("  %-24s %12s  %6.1f km  %v\n", c.Name, formatPopulation(c.Population), c.DistanceKm, c.Zones)
	}
}

// formatPopulation renders a count with thousands separators.
func formatPopulation(n int64) string {
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 && c != '-' {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateFlags.diameter, "diameter", 0, "impactor diameter in meters (required)")
	simulateCmd.Flags().Float64Var(&simulateFlags.density, "density", 3000, "impactor density in kg/m3")
	simulateCmd.Flags().Float64Var(&simulateFlags.velocity, "velocity", 20, "impact velocity in km/s")
	simulateCmd.Flags().Float64Var(&simulateFlags.angle, "angle", 45, "impact angle in degrees, 90 is vertical")
	simulateCmd.Flags().Float64Var(&simulateFlags.lat, "lat", 0, "target latitude")
	simulateCmd.Flags().Float64Var(&simulateFlags.lng, "lng", 0, "target longitude")
	simulateCmd.Flags().IntVar(&simulateFlags.top, "top", 10, "max affected cities to list, 0 for all")
	simulateCmd.Flags().BoolVar(&simulateFlags.asJSON, "json", false, "emit the full result as JSON")
	_ = simulateCmd.MarkFlagRequired("diameter")
	rootCmd.AddCommand(simulateCmd)
}
