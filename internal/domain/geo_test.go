package domain

import (
	"math"
	"testing"
)

// TestHaversineKm_SamePoint verifies identical points yield exactly zero.
func TestHaversineKm_SamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{52.5, 4.2},
		{-33.9, 151.2},
		{90, 0},
	}
	for _, p := range points {
		if d := HaversineKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("HaversineKm(%v, %v, same): expected 0, got %v", p[0], p[1], d)
		}
	}
}

// TestHaversineKm_OneDegreeLat checks one degree of latitude at the equator.
func TestHaversineKm_OneDegreeLat(t *testing.T) {
	d := HaversineKm(0, 0, 1, 0)
	if math.Abs(d-111.32) > 1.0 {
		t.Errorf("1 degree latitude: expected ~111.32 km, got %.4f", d)
	}
}

// TestHaversineKm_Symmetry checks distance is direction-independent.
func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := HaversineKm(52.5, 4.2, 53.0, 5.0)
	d2 := HaversineKm(53.0, 5.0, 52.5, 4.2)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %.10f vs %.10f", d1, d2)
	}
}

// TestBearingDeg tests cardinal directions from the equator.
func TestBearingDeg(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}

	for _, tt := range tests {
		b := BearingDeg(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
		if math.Abs(b-tt.expected) > 1e-6 {
			t.Errorf("%s: expected bearing %.1f, got %.6f", tt.name, tt.expected, b)
		}
		if b < 0 || b >= 360 {
			t.Errorf("%s: bearing %.6f outside [0, 360)", tt.name, b)
		}
	}
}

// TestMetersToDegrees_Equator checks the canonical conversion at latitude 0.
func TestMetersToDegrees_Equator(t *testing.T) {
	dLat, dLon := MetersToDegrees(111320.0, 111320.0, 0)
	if math.Abs(dLat-1.0) > 1e-9 {
		t.Errorf("dLat: expected 1.0, got %.10f", dLat)
	}
	if math.Abs(dLon-1.0) > 1e-9 {
		t.Errorf("dLon: expected 1.0, got %.10f", dLon)
	}
}

// TestMetersToDegrees_HighLatitude checks the cos(lat) scaling of longitude.
func TestMetersToDegrees_HighLatitude(t *testing.T) {
	_, dLon := MetersToDegrees(111320.0, 0, 60)
	// cos(60°) = 0.5, so one equatorial degree of meters spans two degrees.
	if math.Abs(dLon-2.0) > 1e-6 {
		t.Errorf("dLon at 60N: expected 2.0, got %.10f", dLon)
	}
}

// TestMetersToDegrees_Pole verifies the polar boundary does not divide by zero.
func TestMetersToDegrees_Pole(t *testing.T) {
	dLat, dLon := MetersToDegrees(1000, 1000, 90)
	if math.IsInf(dLon, 0) || math.IsNaN(dLon) {
		t.Errorf("dLon at the pole must be finite, got %v", dLon)
	}
	if math.Abs(dLat-1000.0/MetersPerDegreeLat) > 1e-12 {
		t.Errorf("dLat at the pole: expected %.10f, got %.10f", 1000.0/MetersPerDegreeLat, dLat)
	}
}

// TestDegreesToMeters_RoundTrip checks the inverse conversion.
func TestDegreesToMeters_RoundTrip(t *testing.T) {
	const lat = 43.5
	dLat, dLon := MetersToDegrees(1234.5, 678.9, lat)
	dx, dy := DegreesToMeters(dLat, dLon, lat)
	if math.Abs(dx-1234.5) > 1e-6 || math.Abs(dy-678.9) > 1e-6 {
		t.Errorf("round trip: expected (1234.5, 678.9), got (%.6f, %.6f)", dx, dy)
	}
}

// TestValidCoordinates exercises the geographic domain boundaries.
func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		valid    bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.001, 0, false},
		{0, 180.001, false},
		{-91, 0, false},
		{math.NaN(), 0, false},
		{0, math.NaN(), false},
	}

	for _, tt := range tests {
		if got := ValidCoordinates(tt.lat, tt.lon); got != tt.valid {
			t.Errorf("ValidCoordinates(%v, %v): expected %v, got %v", tt.lat, tt.lon, tt.valid, got)
		}
	}
}
