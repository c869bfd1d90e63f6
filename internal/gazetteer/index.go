package gazetteer

import (
	"math"
	"sort"

	"github.com/bolide-group/impact-cli/internal/geodesy"
)

// affinityRangeKm bounds the country-affinity correction: a same-country
// candidate may only override the true nearest city within this distance.
const affinityRangeKm = 300.0

// cellKey addresses one 1-degree grid cell by floored coordinates.
type cellKey struct {
	lat int
	lng int
}

func keyFor(lat, lng float64) cellKey {
	return cellKey{lat: int(math.Floor(lat)), lng: wrapCellLng(int(math.Floor(lng)))}
}

// wrapCellLng normalizes a longitude cell into [-180, 180). Cell 180 is the
// same strip as cell -180.
func wrapCellLng(c int) int {
	for c < -180 {
		c += 360
	}
	for c >= 180 {
		c -= 360
	}
	return c
}

// Index is a read-only spatial and textual index over loaded cities. Every
// city lives in exactly one grid cell, keyed by its floored degree pair.
// Build once with NewIndex; all query methods may then run concurrently.
type Index struct {
	cities []City
	folded []string
	grid   map[cellKey][]int

	countryAffinity bool
}

// IndexOption configures index construction.
type IndexOption func(*Index)

// WithCountryAffinity enables a heuristic nearest-city correction: when a
// coarse bounding-box guess of the query point's country disagrees with the
// nearest city's country, a same-country city within 300 km is preferred.
// Off by default; pure distance is the contract, this is a convenience for
// sparse datasets around borders.
func WithCountryAffinity() IndexOption {
	return func(idx *Index) { idx.countryAffinity = true }
}

// NewIndex builds the grid and search structures over the given cities.
// The slice is copied; input order is preserved and becomes the stable
// iteration order for queries.
func NewIndex(cities []City, opts ...IndexOption) *Index {
	idx := &Index{
		cities: make([]City, len(cities)),
		folded: make([]string, len(cities)),
		grid:   make(map[cellKey][]int),
	}
	copy(idx.cities, cities)
	for _, opt := range opts {
		opt(idx)
	}
	for i, c := range idx.cities {
		idx.folded[i] = Fold(c.Name)
		key := keyFor(c.Lat, c.Lng)
		idx.grid[key] = append(idx.grid[key], i)
	}
	return idx
}

// Len returns the number of indexed cities.
func (idx *Index) Len() int {
	return len(idx.cities)
}

// Cells returns the number of occupied grid cells.
func (idx *Index) Cells() int {
	return len(idx.grid)
}

// Cities returns the indexed cities in load order. The returned slice is
// shared; callers must not modify it.
func (idx *Index) Cities() []City {
	return idx.cities
}

// Nearest returns the city closest to the given coordinate by great-circle
// distance. Coordinates are clamped to valid ranges first. The search scans
// grid cells in a 2-degree neighborhood, widens to 5 degrees if that finds
// nothing, and falls back to a full scan. Ties go to the first candidate
// found. An empty index returns ok=false, never an error.
func (idx *Index) Nearest(lat, lng float64) (City, bool) {
	if len(idx.cities) == 0 {
		return City{}, false
	}
	lat = geodesy.ClampLat(lat)
	lng = geodesy.ClampLng(lng)

	candidates := idx.cellCandidates(lat, lng, 2)
	if len(candidates) == 0 {
		candidates = idx.cellCandidates(lat, lng, 5)
	}
	if len(candidates) == 0 {
		candidates = allIndices(len(idx.cities))
	}

	best := candidates[0]
	bestDist := geodesy.HaversineKm(lat, lng, idx.cities[best].Lat, idx.cities[best].Lng)
	for _, i := range candidates[1:] {
		d := geodesy.HaversineKm(lat, lng, idx.cities[i].Lat, idx.cities[i].Lng)
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	nearest := idx.cities[best]
	if idx.countryAffinity {
		if corrected, ok := idx.applyCountryAffinity(lat, lng, nearest, candidates); ok {
			nearest = corrected
		}
	}
	return nearest, true
}

// applyCountryAffinity prefers a nearby same-country city when the coarse
// country guess for the query point disagrees with the nearest city.
func (idx *Index) applyCountryAffinity(lat, lng float64, nearest City, candidates []int) (City, bool) {
	guess, ok := guessCountry(lat, lng)
	if !ok || countryMatches(nearest.Country, guess) {
		return City{}, false
	}
	bestDist := math.MaxFloat64
	var best City
	found := false
	for _, i := range candidates {
		c := idx.cities[i]
		if !countryMatches(c.Country, guess) {
			continue
		}
		d := geodesy.HaversineKm(lat, lng, c.Lat, c.Lng)
		if d <= affinityRangeKm && d < bestDist {
			best, bestDist = c, d
			found = true
		}
	}
	return best, found
}

// cellCandidates collects city indices from all grid cells within delta
// degrees of the query point, in deterministic cell order, sorted into load
// order.
func (idx *Index) cellCandidates(lat, lng float64, delta int) []int {
	baseLat := int(math.Floor(lat))
	baseLng := int(math.Floor(lng))

	var out []int
	for dLat := -delta; dLat <= delta; dLat++ {
		cellLat := baseLat + dLat
		if cellLat < -90 || cellLat > 90 {
			continue
		}
		for dLng := -delta; dLng <= delta; dLng++ {
			key := cellKey{lat: cellLat, lng: wrapCellLng(baseLng + dLng)}
			out = append(out, idx.grid[key]...)
		}
	}
	sort.Ints(out)
	return out
}

// Within returns every city within radiusKm of center, in load order. The
// grid prunes candidates through a bounding box; each survivor is verified
// with an exact haversine test. Radii that span a hemisphere degenerate to
// a full scan.
func (idx *Index) Within(center geodesy.Point, radiusKm float64) []City {
	if len(idx.cities) == 0 || radiusKm < 0 {
		return nil
	}
	center = center.Clamped()

	box := geodesy.BoundingBox(center, radiusKm)
	var candidates []int
	if box.MinLng <= -180 && box.MaxLng >= 180 {
		candidates = allIndices(len(idx.cities))
	} else {
		minLat := int(math.Floor(box.MinLat))
		maxLat := int(math.Floor(box.MaxLat))
		minLng := int(math.Floor(box.MinLng))
		maxLng := int(math.Floor(box.MaxLng))
		if maxLng-minLng >= 360 {
			candidates = allIndices(len(idx.cities))
		} else {
			for cellLat := minLat; cellLat <= maxLat; cellLat++ {
				if cellLat < -90 || cellLat > 90 {
					continue
				}
				for cellLng := minLng; cellLng <= maxLng; cellLng++ {
					key := cellKey{lat: cellLat, lng: wrapCellLng(cellLng)}
					candidates = append(candidates, idx.grid[key]...)
				}
			}
			sort.Ints(candidates)
		}
	}

	var out []City
	for _, i := range candidates {
		c := idx.cities[i]
		if geodesy.HaversineKm(center.Lat, center.Lng, c.Lat, c.Lng) <= radiusKm {
			out = append(out, c)
		}
	}
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
