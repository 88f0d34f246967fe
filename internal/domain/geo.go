package domain

import "math"

// Physical constants used throughout the drift calculation.
//
// A single canonical meters-per-degree pair is used everywhere. 111320 m/deg
// is the equatorial value for both axes on the spherical approximation; the
// longitude value is scaled by cos(latitude) at the point of use.
const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	// MetersPerDegreeLat is the meridional arc length of one degree of latitude.
	MetersPerDegreeLat = 111320.0

	// MetersPerDegreeLonEquator is the arc length of one degree of longitude
	// at the equator.
	MetersPerDegreeLonEquator = 111320.0

	// cosLatFloor keeps the longitude conversion finite at the poles, where
	// cos(lat) reaches zero. Positions at exactly ±90° are a boundary case,
	// not an error.
	cosLatFloor = 1e-12
)

// Unit conversion factors carried over for callers working in marine units.
const (
	KnotsToMetersPerSecond = 0.514444
	MetersPerSecondToKnots = 1.944012
	NauticalMileToKm       = 1.852
	KmToNauticalMile       = 0.539957
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// HaversineKm computes the great-circle distance in kilometers between two
// points on a sphere of radius EarthRadiusKm. Identical points yield exactly 0.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := Deg2Rad(lat1)
	lat2Rad := Deg2Rad(lat2)
	dLat := Deg2Rad(lat2 - lat1)
	dLon := Deg2Rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BearingDeg computes the initial (forward azimuth) bearing from the first
// point to the second, in degrees normalized to [0, 360).
func BearingDeg(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := Deg2Rad(lat1)
	lat2Rad := Deg2Rad(lat2)
	dLonRad := Deg2Rad(lon2 - lon1)

	y := math.Sin(dLonRad) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad)

	bearing := Rad2Deg(math.Atan2(y, x))
	return math.Mod(bearing+360.0, 360.0)
}

// MetersToDegrees converts a local displacement in meters (dx east, dy north)
// into degree offsets at the given latitude. The longitude denominator shrinks
// with cos(latitude) and is floored near the poles rather than dividing by zero.
func MetersToDegrees(dxMeters, dyMeters, atLat float64) (dLat, dLon float64) {
	cosLat := math.Cos(Deg2Rad(atLat))
	if cosLat < cosLatFloor {
		cosLat = cosLatFloor
	}

	dLat = dyMeters / MetersPerDegreeLat
	dLon = dxMeters / (MetersPerDegreeLonEquator * cosLat)
	return dLat, dLon
}

// DegreesToMeters is the inverse of MetersToDegrees at the given latitude.
func DegreesToMeters(dLat, dLon, atLat float64) (dxMeters, dyMeters float64) {
	cosLat := math.Cos(Deg2Rad(atLat))
	if cosLat < cosLatFloor {
		cosLat = cosLatFloor
	}

	dyMeters = dLat * MetersPerDegreeLat
	dxMeters = dLon * MetersPerDegreeLonEquator * cosLat
	return dxMeters, dyMeters
}

// ValidCoordinates reports whether the pair lies within the geographic domain.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
