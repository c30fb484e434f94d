package model

// ValidCoordinate reports whether the pair is a usable WGS-84 coordinate.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
