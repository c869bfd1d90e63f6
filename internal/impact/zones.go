// Package impact aggregates affected population over damage zones and
// orchestrates the full simulation: physics pipeline, candidate city scan,
// zone classification and ranking.
package impact

import (
	"sort"

	"github.com/bolide-group/impact-cli/internal/gazetteer"
	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// Zone names a damage zone threshold.
type Zone string

const (
	ZoneCrater  Zone = "crater"
	ZoneBlast   Zone = "blast"
	ZoneThermal Zone = "thermal"
)

// ZoneRadii carries the three zone thresholds in kilometers. The radii are
// independent thresholds; callers may supply any values in any relative
// order.
type ZoneRadii struct {
	CraterKm  float64 `json:"crater_km"`
	BlastKm   float64 `json:"blast_km"`
	ThermalKm float64 `json:"thermal_km"`
}

// MaxKm returns the largest of the three radii.
func (r ZoneRadii) MaxKm() float64 {
	m := r.CraterKm
	if r.BlastKm > m {
		m = r.BlastKm
	}
	if r.ThermalKm > m {
		m = r.ThermalKm
	}
	return m
}

// ZonePopulations holds the per-zone population totals. Zones are inclusive
// concentric thresholds, not exclusive bands: a city inside all three radii
// counts toward all three totals, so the totals deliberately overlap.
type ZonePopulations struct {
	Crater  int64 `json:"crater"`
	Blast   int64 `json:"blast"`
	Thermal int64 `json:"thermal"`
}

// AffectedCity is one city that fell inside at least one zone.
type AffectedCity struct {
	Name       string  `json:"name"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Population int64   `json:"population"`
	DistanceKm float64 `json:"distance_km"`
	Zones      []Zone  `json:"zones"`
}

// AggregatePopulation classifies each city against the three zone
// thresholds and accumulates per-zone population totals. Only cities with
// positive population participate. Membership in each zone is tested
// independently with an inclusive comparison. The returned list holds every
// city that qualified for at least one zone, sorted by population
// descending; equal populations keep the input order. An empty collection
// yields zero totals and an empty list, not an error.
func AggregatePopulation(center geodesy.Point, radii ZoneRadii, cities []gazetteer.City) ([]AffectedCity, ZonePopulations) {
	var totals ZonePopulations
	var affected []AffectedCity

	for _, c := range cities {
		if c.Population <= 0 {
			continue
		}
		d := geodesy.HaversineKm(center.Lat, center.Lng, c.Lat, c.Lng)

		var zones []Zone
		if d <= radii.CraterKm {
			zones = append(zones, ZoneCrater)
			totals.Crater += c.Population
		}
		if d <= radii.BlastKm {
			zones = append(zones, ZoneBlast)
			totals.Blast += c.Population
		}
		if d <= radii.ThermalKm {
			zones = append(zones, ZoneThermal)
			totals.Thermal += c.Population
		}
		if len(zones) == 0 {
			continue
		}
		affected = append(affected, AffectedCity{
			Name:       c.Name,
			Country:    c.Country,
			Lat:        c.Lat,
			Lng:        c.Lng,
			Population: c.Population,
			DistanceKm: d,
			Zones:      zones,
		})
	}

	sort.SliceStable(affected, func(i, j int) bool {
		return affected[i].Population > affected[j].Population
	})
	return affected, totals
}

// TotalPopulation sums the populations of the given affected cities. Each
// city counts once regardless of how many zones it is in.
func TotalPopulation(cities []AffectedCity) int64 {
	var total int64
	for _, c := range cities {
		total += c.Population
	}
	return total
}

// TopN returns the first n entries of an already-ranked affected list.
func TopN(cities []AffectedCity, n int) []AffectedCity {
	if n <= 0 || n >= len(cities) {
		return cities
	}
	return cities[:n]
}
