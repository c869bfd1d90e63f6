// Package geodesy provides great-circle math on a spherical Earth model.
// All distances are kilometers, all angles degrees unless noted.
package geodesy

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by all spherical formulas.
	EarthRadiusKm = 6371.0

	// HalfCircumferenceKm is the maximum possible great-circle distance
	// between two points on the sphere.
	HalfCircumferenceKm = math.Pi * EarthRadiusKm
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BBox represents a geographic bounding box.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// ClampLat restricts a latitude to the valid [-90, 90] range.
func ClampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

// ClampLng restricts a longitude to the valid [-180, 180] range.
func ClampLng(lng float64) float64 {
	return math.Max(-180, math.Min(180, lng))
}

// Clamped returns a copy of p with both coordinates clamped to valid ranges.
func (p Point) Clamped() Point {
	return Point{Lat: ClampLat(p.Lat), Lng: ClampLng(p.Lng)}
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates. The result is symmetric in its arguments, zero for identical
// points, and never exceeds HalfCircumferenceKm.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	return HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

// DestinationPoint returns the point reached by traveling distanceKm from
// origin along the given initial bearing (degrees clockwise from north).
func DestinationPoint(origin Point, bearingDeg, distanceKm float64) Point {
	phi1 := origin.Lat * math.Pi / 180
	lambda1 := origin.Lng * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceKm / EarthRadiusKm

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(sinPhi2)
	y := math.Sin(theta) * math.Sin(delta) * math.Cos(phi1)
	x := math.Cos(delta) - math.Sin(phi1)*sinPhi2
	lambda2 := lambda1 + math.Atan2(y, x)

	// Normalize longitude to [-180, 180).
	lng := math.Mod(lambda2*180/math.Pi+540, 360) - 180
	return Point{Lat: phi2 * 180 / math.Pi, Lng: lng}
}

// BoundingBox returns the bounding box that contains every point within
// radiusKm of center. Near the poles, or for radii approaching a hemisphere,
// the box degenerates to the full longitude span.
func BoundingBox(center Point, radiusKm float64) BBox {
	if radiusKm < 0 {
		radiusKm = 0
	}
	latDelta := radiusKm / EarthRadiusKm * 180 / math.Pi

	minLat := center.Lat - latDelta
	maxLat := center.Lat + latDelta

	// The longitude span widens with latitude. If the circle crosses a pole
	// every longitude is inside it.
	if minLat <= -90 || maxLat >= 90 {
		return BBox{MinLng: -180, MinLat: ClampLat(minLat), MaxLng: 180, MaxLat: ClampLat(maxLat)}
	}

	// Use the box latitude closest to a pole so the longitude span is wide
	// enough across the whole box.
	cosLat := math.Min(math.Cos(minLat*math.Pi/180), math.Cos(maxLat*math.Pi/180))
	if cosLat <= 0 {
		return BBox{MinLng: -180, MinLat: minLat, MaxLng: 180, MaxLat: maxLat}
	}
	lngDelta := latDelta / cosLat
	if lngDelta >= 180 {
		return BBox{MinLng: -180, MinLat: minLat, MaxLng: 180, MaxLat: maxLat}
	}
	return BBox{
		MinLng: center.Lng - lngDelta,
		MinLat: minLat,
		MaxLng: center.Lng + lngDelta,
		MaxLat: maxLat,
	}
}
