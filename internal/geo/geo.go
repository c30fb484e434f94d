// Package geo holds the distance math used for price estimates. Distances
// are great-circle (Haversine) over WGS-84 coordinates; a routing engine
// would refine them but is not required for estimation.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
