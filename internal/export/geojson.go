// Package export renders simulation results as GeoJSON for map frontends.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/bolide-group/impact-cli/internal/geodesy"
	"github.com/bolide-group/impact-cli/internal/impact"
)

// circleSegments is the number of segments used to trace a zone circle. The
// closing vertex repeats the first, so each ring carries circleSegments+1
// points.
const circleSegments = 64

// ZonesFeatureCollection converts one simulation result into a GeoJSON
// FeatureCollection: one polygon per damage zone, one point per affected
// city, and a point for the impact site itself. The result must carry a
// target coordinate.
func ZonesFeatureCollection(res *impact.SimulationResult) (*geojson.FeatureCollection, error) {
	if res == nil || res.Target == nil {
		return nil, eris.New("export: result has no target coordinate")
	}
	center := *res.Target

	fc := &geojson.FeatureCollection{}

	fc.Features = append(fc.Features, &geojson.Feature{
		ID:       "impact-site",
		Geometry: pointGeom(center),
		Properties: map[string]any{
			"kind":              "impact_site",
			"crater_km":         res.CraterKm,
			"energy_mt":         res.EnergyMt,
			"seismic_magnitude": res.SeismicMagnitude,
		},
	})

	craterKm, blastKm, thermalKm := res.Radii()
	zones := []struct {
		zone       impact.Zone
		radiusKm   float64
		population int64
	}{
		{impact.ZoneThermal, thermalKm, zonePop(res, impact.ZoneThermal)},
		{impact.ZoneBlast, blastKm, zonePop(res, impact.ZoneBlast)},
		{impact.ZoneCrater, craterKm, zonePop(res, impact.ZoneCrater)},
	}
	for _, z := range zones {
		if z.radiusKm <= 0 {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "zone-" + string(z.zone),
			Geometry: circlePolygon(center, z.radiusKm),
			Properties: map[string]any{
				"kind":       "zone",
				"zone":       string(z.zone),
				"radius_km":  z.radiusKm,
				"population": z.population,
			},
		})
	}

	for _, city := range res.AffectedCities {
		zoneNames := make([]string, len(city.Zones))
		for i, z := range city.Zones {
			zoneNames[i] = string(z)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: pointGeom(geodesy.Point{Lat: city.Lat, Lng: city.Lng}),
			Properties: map[string]any{
				"kind":        "city",
				"name":        city.Name,
				"country":     city.Country,
				"population":  city.Population,
				"distance_km": city.DistanceKm,
				"zones":       zoneNames,
			},
		})
	}

	return fc, nil
}

// Marshal renders the result directly to GeoJSON bytes.
func Marshal(res *impact.SimulationResult) ([]byte, error) {
	fc, err := ZonesFeatureCollection(res)
	if err != nil {
		return nil, err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "export: encode feature collection")
	}
	return data, nil
}

func zonePop(res *impact.SimulationResult, zone impact.Zone) int64 {
	if res.ZonePopulations == nil {
		return 0
	}
	switch zone {
	case impact.ZoneCrater:
		return res.ZonePopulations.Crater
	case impact.ZoneBlast:
		return res.ZonePopulations.Blast
	default:
		return res.ZonePopulations.Thermal
	}
}

func pointGeom(p geodesy.Point) geom.T {
	return geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat}).SetSRID(4326)
}

// circlePolygon traces a closed ring around center by walking the bearing in
// equal steps. Great-circle destinations keep the ring honest at high
// latitudes, where a naive degree offset would distort badly.
func circlePolygon(center geodesy.Point, radiusKm float64) geom.T {
	flat := make([]float64, 0, (circleSegments+1)*2)
	for i := 0; i <= circleSegments; i++ {
		bearing := float64(i%circleSegments) * 360 / circleSegments
		p := geodesy.DestinationPoint(center, bearing, radiusKm)
		flat = append(flat, p.Lng, p.Lat)
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)
}
