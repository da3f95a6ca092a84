package geo

import (
	"math"

	"github.com/golang/geo/s1"
)

// EarthRadiusMeters is the mean earth radius used for delivery distances.
const EarthRadiusMeters = 6371000.0

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FromLonLat builds a Coordinate from a GeoJSON-ordered [lon, lat] pair.
func FromLonLat(lon, lat float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

// Valid reports whether both components are finite and inside their domain.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// Distance returns the haversine great-circle distance from customer to venue
// in meters, rounded half away from zero.
func Distance(customer, venue Coordinate) int {
	dLat := radians(venue.Lat - customer.Lat)
	dLon := radians(venue.Lon - customer.Lon)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + sinLon*sinLon*math.Cos(radians(customer.Lat))*math.Cos(radians(venue.Lat))
	// rounding can push a slightly outside [0, 1] for near-identical or antipodal points
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(EarthRadiusMeters * c))
}
