package geo

import (
	"errors"
	"fmt"
	"math"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is not a finite
// value within its valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is an immutable (latitude, longitude) pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate builds a Coordinate, rejecting NaN, infinities and values
// outside [-90, 90] x [-180, 180].
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, lon)
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// Point returns the coordinate itself. Types embedding a Coordinate get this
// method promoted, which makes them Located.
func (c Coordinate) Point() Coordinate {
	return c
}

// Geohash encodes the coordinate as a geohash string with the given number of
// characters.
func (c Coordinate) Geohash(precision int) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}
