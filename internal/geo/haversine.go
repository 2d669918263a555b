// Package geo computes great-circle distances on a spherical Earth.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by every distance in this module.
	EarthRadiusKm = 6371.0

	// KmPerDegree is the length of one degree of arc along a great circle.
	KmPerDegree = EarthRadiusKm * math.Pi / 180

	kmPerMile = 1.609344
)

// Haversine returns the great-circle distance in kilometers between two points given in
// decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	lat1R := toRadians(lat1)
	lat2R := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1R)*math.Cos(lat2R)*sinLon*sinLon

	// rounding can push a a hair past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 {
	return km / kmPerMile
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
