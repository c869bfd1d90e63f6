package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolide-group/impact-cli/internal/gazetteer"
	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// cityAtKm places a city due north of the center at the given distance.
func cityAtKm(t *testing.T, center geodesy.Point, km float64, name string, pop int64) gazetteer.City {
	t.Helper()
	p := geodesy.DestinationPoint(center, 0, km)
	return gazetteer.City{Name: name, Lat: p.Lat, Lng: p.Lng, Population: pop}
}

func TestAggregatePopulationThreeZones(t *testing.T) {
	center := geodesy.Point{Lat: 10, Lng: 20}
	cities := []gazetteer.City{
		cityAtKm(t, center, 10, "Inner", 100),
		cityAtKm(t, center, 50, "Middle", 200),
		cityAtKm(t, center, 200, "Outer", 300),
	}
	radii := ZoneRadii{CraterKm: 20, BlastKm: 100, ThermalKm: 250}

	affected, totals := AggregatePopulation(center, radii, cities)

	assert.Equal(t, int64(100), totals.Crater)
	assert.Equal(t, int64(300), totals.Blast)
	assert.Equal(t, int64(600), totals.Thermal)

	require.Len(t, affected, 3)
	byName := map[string]AffectedCity{}
	for _, a := range affected {
		byName[a.Name] = a
	}
	assert.Equal(t, []Zone{ZoneCrater, ZoneBlast, ZoneThermal}, byName["Inner"].Zones)
	assert.Equal(t, []Zone{ZoneBlast, ZoneThermal}, byName["Middle"].Zones)
	assert.Equal(t, []Zone{ZoneThermal}, byName["Outer"].Zones)

	// Ranked by population descending.
	assert.Equal(t, "Outer", affected[0].Name)
	assert.Equal(t, "Middle", affected[1].Name)
	assert.Equal(t, "Inner", affected[2].Name)

	// Union total counts each city once.
	assert.Equal(t, int64(600), TotalPopulation(affected))
}

func TestAggregatePopulationIndependentThresholds(t *testing.T) {
	// Radii out of their usual order: thermal smaller than crater. Each
	// threshold is applied independently.
	center := geodesy.Point{Lat: 0, Lng: 0}
	cities := []gazetteer.City{cityAtKm(t, center, 30, "Town", 1000)}
	radii := ZoneRadii{CraterKm: 50, BlastKm: 10, ThermalKm: 20}

	affected, totals := AggregatePopulation(center, radii, cities)
	require.Len(t, affected, 1)
	assert.Equal(t, []Zone{ZoneCrater}, affected[0].Zones)
	assert.Equal(t, int64(1000), totals.Crater)
	assert.Zero(t, totals.Blast)
	assert.Zero(t, totals.Thermal)
}

func TestAggregatePopulationSkipsUnpopulated(t *testing.T) {
	center := geodesy.Point{Lat: 0, Lng: 0}
	cities := []gazetteer.City{
		cityAtKm(t, center, 5, "Ghost", 0),
		cityAtKm(t, center, 6, "Hamlet", 12),
	}
	affected, totals := AggregatePopulation(center, ZoneRadii{CraterKm: 10, BlastKm: 10, ThermalKm: 10}, cities)

	require.Len(t, affected, 1)
	assert.Equal(t, "Hamlet", affected[0].Name)
	assert.Equal(t, int64(12), totals.Crater)
}

func TestAggregatePopulationEmptyInput(t *testing.T) {
	affected, totals := AggregatePopulation(geodesy.Point{}, ZoneRadii{CraterKm: 10, BlastKm: 20, ThermalKm: 30}, nil)
	assert.Empty(t, affected)
	assert.Zero(t, totals.Crater)
	assert.Zero(t, totals.Blast)
	assert.Zero(t, totals.Thermal)
}

func TestAggregatePopulationStableTieBreak(t *testing.T) {
	center := geodesy.Point{Lat: 0, Lng: 0}
	cities := []gazetteer.City{
		cityAtKm(t, center, 1, "First", 500),
		cityAtKm(t, center, 2, "Second", 500),
		cityAtKm(t, center, 3, "Third", 900),
	}
	affected, _ := AggregatePopulation(center, ZoneRadii{ThermalKm: 10}, cities)

	require.Len(t, affected, 3)
	assert.Equal(t, "Third", affected[0].Name)
	assert.Equal(t, "First", affected[1].Name)
	assert.Equal(t, "Second", affected[2].Name)
}

func TestAggregatePopulationBoundaryInclusive(t *testing.T) {
	center := geodesy.Point{Lat: 0, Lng: 0}
	city := gazetteer.City{Name: "Edge", Lat: 0, Lng: 1, Population: 10}
	d := geodesy.HaversineKm(0, 0, 0, 1)

	affected, totals := AggregatePopulation(center, ZoneRadii{BlastKm: d}, []gazetteer.City{city})
	require.Len(t, affected, 1)
	assert.Equal(t, []Zone{ZoneBlast}, affected[0].Zones)
	assert.Equal(t, int64(10), totals.Blast)
}

func TestZoneRadiiMaxKm(t *testing.T) {
	assert.Equal(t, 30.0, ZoneRadii{CraterKm: 10, BlastKm: 30, ThermalKm: 20}.MaxKm())
	assert.Equal(t, 50.0, ZoneRadii{CraterKm: 50, BlastKm: 30, ThermalKm: 20}.MaxKm())
	assert.Equal(t, 20.0, ZoneRadii{CraterKm: 10, BlastKm: 15, ThermalKm: 20}.MaxKm())
}

func TestTopN(t *testing.T) {
	cities := []AffectedCity{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	assert.Len(t, TopN(cities, 2), 2)
	assert.Len(t, TopN(cities, 0), 3)
	assert.Len(t, TopN(cities, 10), 3)
	assert.Equal(t, "A", TopN(cities, 1)[0].Name)
}
