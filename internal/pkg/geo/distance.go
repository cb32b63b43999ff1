package geo

import (
	"math"

	"github.com/fieldsync-agent/internal/domain"
)

const earthRadiusKm = 6371.0

// Distance computes the great-circle (haversine) distance between two
// points in kilometers. The second return value is false when either
// endpoint is the (0,0) "unknown location" sentinel: no distance is
// computable and callers must not add a bogus leg spanning to the origin.
func Distance(a, b domain.Coordinate) (float64, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	return haversine(a.Lat, a.Long, b.Lat, b.Long), true
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// ValidCoordinates reports whether lat/long fall in WGS84 range.
func ValidCoordinates(lat, long float64) bool {
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}
