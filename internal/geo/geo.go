package geo

import (
	"math"
)

// DistanceFromEquator returns the absolute latitude in degrees.
func DistanceFromEquator(latitude float64) float64 {
	return math.Abs(latitude)
}

// IsNorthernHemisphere reports whether the latitude lies north of the equator.
// The equator itself counts as southern, matching the seasonal table mirroring.
func IsNorthernHemisphere(latitude float64) bool {
	return latitude > 0
}

// UVIntensityByLatitude estimates surface UV intensity for a latitude and
// calendar month on the standard 0-11 UV index scale. Base intensity decays
// linearly from 10 at the equator to 0 at the poles, then a +/-30% cosine
// seasonal swing is applied, anchored to the local summer month (June in the
// north, December in the south).
func UVIntensityByLatitude(latitude float64, month int) float64 {
	base := 10 - (math.Abs(latitude)/90)*10

	peakMonth := 6.0
	if !IsNorthernHemisphere(latitude) {
		peakMonth = 12.0
	}

	seasonal := 1 + 0.3*math.Cos(2*math.Pi*(float64(month)-peakMonth)/12)

	intensity := base * seasonal
	if intensity < 0 {
		return 0
	}
	if intensity > 11 {
		return 11
	}
	return intensity
}
