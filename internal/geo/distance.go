package geo

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMiles is the mean Earth radius used to turn angles into miles.
const EarthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between a and b in statute miles.
func DistanceMiles(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	la := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	lb := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return la.Distance(lb).Radians() * EarthRadiusMiles
}
