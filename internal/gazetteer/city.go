// Package gazetteer holds the canonical city record, the degree-grid spatial
// index over loaded cities, nearest-city lookup and ranked name search. The
// index is built once from a loaded dataset and is read-only afterwards, so
// every query path is safe for concurrent use.
package gazetteer

import (
	"math"
	"strconv"
	"strings"

	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// City is the canonical city point record. Population 0 means unknown;
// such cities are excluded from population totals but still participate in
// nearest-city lookups.
type City struct {
	Name       string  `json:"name"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Population int64   `json:"population,omitempty"`
}

// Point returns the city coordinate.
func (c City) Point() geodesy.Point {
	return geodesy.Point{Lat: c.Lat, Lng: c.Lng}
}

// Field aliases accepted by Normalize, in priority order. Dataset sources
// use varying conventions; matching is case-insensitive.
var (
	nameAliases       = []string{"name", "city", "town"}
	countryAliases    = []string{"country", "country_name"}
	latAliases        = []string{"lat", "latitude"}
	lngAliases        = []string{"lon", "lng", "longitude"}
	populationAliases = []string{"population", "pop_max", "pop_est"}
)

// Normalize converts one raw heterogeneous source record into the canonical
// City shape. It returns false for records that are unusable: no resolvable
// name, or missing/non-finite coordinates. Everything past the load boundary
// sees only canonical records.
func Normalize(raw map[string]any) (City, bool) {
	if len(raw) == 0 {
		return City{}, false
	}

	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		fields[strings.ToLower(strings.TrimSpace(k))] = v
	}

	name, ok := stringField(fields, nameAliases)
	if !ok || name == "" {
		return City{}, false
	}
	lat, ok := floatField(fields, latAliases)
	if !ok {
		return City{}, false
	}
	lng, ok := floatField(fields, lngAliases)
	if !ok {
		return City{}, false
	}

	c := City{Name: name, Lat: lat, Lng: lng}
	if country, ok := stringField(fields, countryAliases); ok {
		c.Country = country
	}
	if pop, ok := floatField(fields, populationAliases); ok && pop > 0 {
		c.Population = int64(pop)
	}
	return c, true
}

func stringField(fields map[string]any, aliases []string) (string, bool) {
	for _, key := range aliases {
		v, ok := fields[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

func floatField(fields map[string]any, aliases []string) (float64, bool) {
	for _, key := range aliases {
		v, ok := fields[key]
		if !ok {
			continue
		}
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return f, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
