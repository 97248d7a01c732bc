package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
// Spherical approximation, ~0.3% off ellipsoidal models; fine for activity
// tracking, not for survey work.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance in meters between two
// points given in decimal degrees. Identical points return exactly 0.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return DistanceMetersOnSphere(lat1, lng1, lat2, lng2, EarthRadiusMeters)
}

// DistanceMetersOnSphere is DistanceMeters with a caller-supplied sphere
// radius in meters.
func DistanceMetersOnSphere(lat1, lng1, lat2, lng2, radiusMeters float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return radiusMeters * c
}
