package geofence

import "math"

// Mean Earth radius in meters, same constant the legacy checador used.
const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. Inputs are signed decimal degrees; no range
// validation happens here, and NaN inputs propagate to the result.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Round2 rounds to 2 decimals, the precision used everywhere a distance is
// shown to an employee or persisted on a checada.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
