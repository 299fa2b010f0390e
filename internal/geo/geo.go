// Package geo checks reported coordinates against question geofences.
package geo

import (
	"math"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/hunt"
)

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle (haversine) distance in meters
// between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// Validate reports whether the reported coordinate falls inside the fence.
// Coordinates outside the valid latitude/longitude ranges are rejected.
func Validate(lat, lon float64, fence hunt.Geofence) bool {
	if !ValidCoordinate(lat, lon) {
		return false
	}
	return Distance(lat, lon, fence.Lat, fence.Lon) <= fence.RadiusMeters
}

// ValidCoordinate reports whether lat/lon form a usable coordinate.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
