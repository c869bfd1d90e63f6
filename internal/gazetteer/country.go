package gazetteer

import "strings"

// countryBox is a hand-tuned approximate bounding box for one country, used
// only by the optional country-affinity heuristic. Boxes overlap and
// misclassify border regions; none of this is load-bearing for the distance
// contract.
type countryBox struct {
	code string
	name string

	minLat, maxLat float64
	minLng, maxLng float64
}

// Ordered roughly smaller-first so contained countries match before their
// larger neighbors.
var countryBoxes = []countryBox{
	{code: "JP", name: "Japan", minLat: 24, maxLat: 46, minLng: 123, maxLng: 146},
	{code: "GB", name: "United Kingdom", minLat: 49.9, maxLat: 60.9, minLng: -8.6, maxLng: 1.8},
	{code: "DE", name: "Germany", minLat: 47.3, maxLat: 55.1, minLng: 5.9, maxLng: 15.0},
	{code: "FR", name: "France", minLat: 41.3, maxLat: 51.1, minLng: -5.1, maxLng: 9.6},
	{code: "ES", name: "Spain", minLat: 36.0, maxLat: 43.8, minLng: -9.3, maxLng: 3.3},
	{code: "IT", name: "Italy", minLat: 36.6, maxLat: 47.1, minLng: 6.6, maxLng: 18.5},
	{code: "IN", name: "India", minLat: 6.5, maxLat: 35.5, minLng: 68.1, maxLng: 97.4},
	{code: "MX", name: "Mexico", minLat: 14.5, maxLat: 32.7, minLng: -118.5, maxLng: -86.7},
	{code: "AR", name: "Argentina", minLat: -55.1, maxLat: -21.8, minLng: -73.6, maxLng: -53.6},
	{code: "AU", name: "Australia", minLat: -43.7, maxLat: -10.6, minLng: 113.1, maxLng: 153.7},
	{code: "BR", name: "Brazil", minLat: -33.8, maxLat: 5.3, minLng: -74.0, maxLng: -34.7},
	{code: "CN", name: "China", minLat: 18.1, maxLat: 53.6, minLng: 73.5, maxLng: 134.8},
	{code: "US", name: "United States", minLat: 24.5, maxLat: 49.4, minLng: -124.8, maxLng: -66.9},
	{code: "CA", name: "Canada", minLat: 41.7, maxLat: 83.1, minLng: -141.0, maxLng: -52.6},
	{code: "RU", name: "Russia", minLat: 41.2, maxLat: 81.9, minLng: 19.6, maxLng: 180},
}

// guessCountry returns a coarse country guess for a coordinate, or ok=false
// when no box contains it.
func guessCountry(lat, lng float64) (countryBox, bool) {
	for _, box := range countryBoxes {
		if lat >= box.minLat && lat <= box.maxLat && lng >= box.minLng && lng <= box.maxLng {
			return box, true
		}
	}
	return countryBox{}, false
}

// countryMatches reports whether a city's country field names the guessed
// country, accepting either the ISO code or the English name.
func countryMatches(cityCountry string, guess countryBox) bool {
	c := strings.TrimSpace(cityCountry)
	return strings.EqualFold(c, guess.code) || strings.EqualFold(c, guess.name)
}
