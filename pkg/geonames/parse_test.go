package geonames

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a 19-column dump row with the given fields set.
func row(id, name, lat, lng, feature, country, population string) string {
	cols := make([]string, geonameColumns)
	cols[colGeonameID] = id
	cols[colName] = name
	cols[colLat] = lat
	cols[colLng] = lng
	cols[colFeatureCode] = feature
	cols[colCountryCode] = country
	cols[colPopulation] = population
	return strings.Join(cols, "\t")
}

func TestParseCity(t *testing.T) {
	line := row("1850147", "Tokyo", "35.6895", "139.69171", "PPLC", "JP", "8336599")

	city, ok := ParseCity(line)
	require.True(t, ok)
	assert.EqualValues(t, 1850147, city.GeonameID)
	assert.Equal(t, "Tokyo", city.Name)
	assert.Equal(t, "JP", city.CountryCode)
	assert.Equal(t, "PPLC", city.FeatureCode)
	assert.InDelta(t, 35.6895, city.Lat, 1e-6)
	assert.InDelta(t, 139.69171, city.Lng, 1e-6)
	assert.EqualValues(t, 8336599, city.Population)
}

func TestParseCity_Rejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"blank", ""},
		{"comment", "# header"},
		{"short row", "1\tTokyo\t35.6"},
		{"bad lat", row("1", "Tokyo", "not-a-number", "139.69", "PPL", "JP", "100")},
		{"bad lng", row("1", "Tokyo", "35.69", "", "PPL", "JP", "100")},
		{"empty name", row("1", "", "35.69", "139.69", "PPL", "JP", "100")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseCity(tt.line)
			assert.False(t, ok)
		})
	}
}

func TestParseCity_MissingPopulation(t *testing.T) {
	city, ok := ParseCity(row("2", "Smalltown", "10.0", "20.0", "PPL", "XX", ""))
	require.True(t, ok)
	assert.EqualValues(t, 0, city.Population)
}

func TestParseCity_CRLF(t *testing.T) {
	city, ok := ParseCity(row("3", "Oslo", "59.91", "10.75", "PPLC", "NO", "580000") + "\r\n")
	require.True(t, ok)
	assert.Equal(t, "Oslo", city.Name)
}

func TestRecord(t *testing.T) {
	city, ok := ParseCity(row("4", "Lima", "-12.04", "-77.03", "PPLC", "PE", "7737002"))
	require.True(t, ok)

	rec := city.Record()
	assert.Equal(t, "Lima", rec["name"])
	assert.Equal(t, "PE", rec["country"])
	assert.Equal(t, -12.04, rec["lat"])
	assert.Equal(t, -77.03, rec["lng"])
	assert.EqualValues(t, 7737002, rec["population"])
}

func TestDumpURLs(t *testing.T) {
	assert.Equal(t, "https://download.geonames.org/export/dump/cities1000.zip", Cities1000.URL())
	assert.Equal(t, "cities15000.txt", Cities15000.Member())
}
