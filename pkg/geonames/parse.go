package geonames

import (
	"strconv"
	"strings"
)

// City is one parsed row of a GeoNames dump.
type City struct {
	GeonameID   int64
	Name        string
	CountryCode string
	Lat         float64
	Lng         float64
	Population  int64
	FeatureCode string
}

// geonameColumns is the fixed column count of the dump row format.
const geonameColumns = 19

// Column indices into a dump row.
const (
	colGeonameID   = 0
	colName        = 1
	colLat         = 4
	colLng         = 5
	colFeatureCode = 7
	colCountryCode = 8
	colPopulation  = 14
)

// ParseCity parses one tab-separated dump row. It returns ok=false for
// blank lines, comment lines, short rows and rows with unparseable
// coordinates. Population and geoname id default to zero when absent.
func ParseCity(line string) (City, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return City{}, false
	}

	cols := strings.Split(line, "\t")
	if len(cols) < geonameColumns {
		return City{}, false
	}

	name := strings.TrimSpace(cols[colName])
	if name == "" {
		return City{}, false
	}
	lat, err := strconv.ParseFloat(cols[colLat], 64)
	if err != nil {
		return City{}, false
	}
	lng, err := strconv.ParseFloat(cols[colLng], 64)
	if err != nil {
		return City{}, false
	}

	city := City{
		Name:        name,
		CountryCode: strings.TrimSpace(cols[colCountryCode]),
		FeatureCode: strings.TrimSpace(cols[colFeatureCode]),
		Lat:         lat,
		Lng:         lng,
	}
	if id, err := strconv.ParseInt(cols[colGeonameID], 10, 64); err == nil {
		city.GeonameID = id
	}
	if pop, err := strconv.ParseInt(cols[colPopulation], 10, 64); err == nil && pop > 0 {
		city.Population = pop
	}
	return city, true
}

// Record converts the parsed row into the heterogeneous field map consumed
// by the dataset normalization boundary.
func (c City) Record() map[string]any {
	return map[string]any{
		"name":       c.Name,
		"country":    c.CountryCode,
		"lat":        c.Lat,
		"lng":        c.Lng,
		"population": c.Population,
	}
}
