package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Paulo", "sao paulo"},
		{"Öskemen", "oskemen"},
		{"Kraków", "krakow"},
		{"PARIS", "paris"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in))
	}
}

func TestSearchBucketRanking(t *testing.T) {
	idx := NewIndex([]City{
		{Name: "Trapar", Lat: 10, Lng: 10, Population: 90000000},
		{Name: "Paris", Lat: 48.8566, Lng: 2.3522, Population: 2148000},
		{Name: "South Paris", Lat: 44.2237, Lng: -70.5134, Population: 5000},
	})

	got := idx.Search("par", 10)
	require.Len(t, got, 3)

	// Prefix beats word-start beats substring, regardless of population.
	assert.Equal(t, "Paris", got[0].Name)
	assert.Equal(t, "South Paris", got[1].Name)
	assert.Equal(t, "Trapar", got[2].Name)
}

func TestSearchPopulationOrderWithinBucket(t *testing.T) {
	idx := NewIndex([]City{
		{Name: "Santiago", Lat: -33.4489, Lng: -70.6693, Population: 5614000},
		{Name: "San Jose", Lat: 37.3382, Lng: -121.8863, Population: 1030000},
		{Name: "San Salvador", Lat: 13.6929, Lng: -89.2182, Population: 567698},
		{Name: "Sanremo", Lat: 43.8175, Lng: 7.7761},
	})

	got := idx.Search("san", 10)
	require.Len(t, got, 4)
	assert.Equal(t, "Santiago", got[0].Name)
	assert.Equal(t, "San Jose", got[1].Name)
	assert.Equal(t, "San Salvador", got[2].Name)
	// No population sorts last within the bucket.
	assert.Equal(t, "Sanremo", got[3].Name)
}

func TestSearchDiacriticsBothSides(t *testing.T) {
	idx := NewIndex([]City{
		{Name: "São Paulo", Lat: -23.5505, Lng: -46.6333, Population: 12325232},
		{Name: "Malmö", Lat: 55.6050, Lng: 13.0038, Population: 316588},
	})

	got := idx.Search("sao", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "São Paulo", got[0].Name)

	got = idx.Search("malmö", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Malmö", got[0].Name)
}

func TestSearchWordStart(t *testing.T) {
	idx := NewIndex([]City{
		{Name: "New York", Lat: 40.7128, Lng: -74.0060, Population: 8336817},
		{Name: "Newcastle", Lat: 54.9783, Lng: -1.6178, Population: 300196},
		{Name: "Canyork", Lat: 1, Lng: 1, Population: 100},
	})

	got := idx.Search("york", 5)
	require.Len(t, got, 2)
	assert.Equal(t, "New York", got[0].Name)
	assert.Equal(t, "Canyork", got[1].Name)
}

func TestSearchLimitAndStability(t *testing.T) {
	cities := []City{
		{Name: "Springfield A", Lat: 1, Lng: 1, Population: 500},
		{Name: "Springfield B", Lat: 2, Lng: 2, Population: 500},
		{Name: "Springfield C", Lat: 3, Lng: 3, Population: 500},
	}
	idx := NewIndex(cities)

	got := idx.Search("spring", 2)
	require.Len(t, got, 2)
	// Equal populations keep load order.
	assert.Equal(t, "Springfield A", got[0].Name)
	assert.Equal(t, "Springfield B", got[1].Name)

	all := idx.Search("spring", 0)
	assert.Len(t, all, 3)
}

func TestSearchBlankQuery(t *testing.T) {
	idx := NewIndex(testCities())
	assert.Nil(t, idx.Search("", 10))
	assert.Nil(t, idx.Search("   ", 10))
}

func TestSearchNoMatch(t *testing.T) {
	idx := NewIndex(testCities())
	assert.Empty(t, idx.Search("zzzz", 10))
}
