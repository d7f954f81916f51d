package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Known airport coordinates for testing
var (
	// LHR - London Heathrow Airport
	LHR = Coordinates{Lat: 51.4700, Lon: -0.4543}
	// JFK - New York John F. Kennedy International Airport
	JFK = Coordinates{Lat: 40.6413, Lon: -73.7781}
	// LAX - Los Angeles International Airport
	LAX = Coordinates{Lat: 33.9425, Lon: -118.4081}
	// SYD - Sydney Kingsford Smith Airport
	SYD = Coordinates{Lat: -33.9399, Lon: 151.1753}
	// NRT - Tokyo Narita International Airport
	NRT = Coordinates{Lat: 35.7720, Lon: 140.3929}
	// London city centre
	London = Coordinates{Lat: 51.5074, Lon: -0.1278}
	// New York city centre
	NewYork = Coordinates{Lat: 40.7128, Lon: -74.0060}
)

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		from      Coordinates
		to        Coordinates
		expected  float64 // expected distance in kilometers
		tolerance float64 // acceptable error margin
	}{
		{
			name:      "London to New York",
			from:      London,
			to:        NewYork,
			expected:  5570,
			tolerance: 20,
		},
		{
			name:      "JFK to LAX",
			from:      JFK,
			to:        LAX,
			expected:  3983, // approximately 3,983 km
			tolerance: 25,
		},
		{
			name:      "LHR to SYD",
			from:      LHR,
			to:        SYD,
			expected:  17016, // approximately 17,016 km
			tolerance: 60,
		},
		{
			name:      "JFK to NRT",
			from:      JFK,
			to:        NRT,
			expected:  10879, // approximately 10,879 km
			tolerance: 60,
		},
		{
			name:      "Same location (JFK to JFK)",
			from:      JFK,
			to:        JFK,
			expected:  0,
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance := Haversine(tt.from.Lat, tt.from.Lon, tt.to.Lat, tt.to.Lon)
			diff := math.Abs(distance - tt.expected)
			assert.LessOrEqual(t, diff, tt.tolerance,
				"Distance %f should be within %f of %f", distance, tt.tolerance, tt.expected)
		})
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	// Distance from A to B should equal distance from B to A
	distAB := Haversine(JFK.Lat, JFK.Lon, SYD.Lat, SYD.Lon)
	distBA := Haversine(SYD.Lat, SYD.Lon, JFK.Lat, JFK.Lon)

	assert.InDelta(t, distAB, distBA, 0.001, "Distance should be symmetric")
}

func TestHaversine_MonotonicWithSeparation(t *testing.T) {
	// Points further along the same meridian must be further away.
	near := Haversine(0, 0, 10, 0)
	far := Haversine(0, 0, 20, 0)
	assert.Greater(t, far, near)
}

func TestHaversineWithRadius(t *testing.T) {
	// Miles radius should scale the km result by the radius ratio.
	km := Haversine(JFK.Lat, JFK.Lon, LAX.Lat, LAX.Lon)
	miles := HaversineWithRadius(JFK.Lat, JFK.Lon, LAX.Lat, LAX.Lon, 3958.8)
	assert.InDelta(t, km*3958.8/EarthRadiusKm, miles, 0.001)
}

func TestDistanceTo(t *testing.T) {
	distance := JFK.DistanceTo(LAX)
	directHaversine := Haversine(JFK.Lat, JFK.Lon, LAX.Lat, LAX.Lon)

	assert.Equal(t, directHaversine, distance, "DistanceTo should match Haversine")
}

func TestCoordinates_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coords   Coordinates
		expected bool
	}{
		{"Valid JFK", JFK, true},
		{"Valid Sydney (negative lat)", SYD, true},
		{"Valid origin", Coordinates{0, 0}, true},
		{"Invalid latitude too high", Coordinates{91, 0}, false},
		{"Invalid latitude too low", Coordinates{-91, 0}, false},
		{"Invalid longitude too high", Coordinates{0, 181}, false},
		{"Invalid longitude too low", Coordinates{0, -181}, false},
		{"Edge case max lat", Coordinates{90, 0}, true},
		{"Edge case min lat", Coordinates{-90, 0}, true},
		{"Edge case max lon", Coordinates{0, 180}, true},
		{"Edge case min lon", Coordinates{0, -180}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coords.IsValid())
		})
	}
}

func TestCoordinates_IsZero(t *testing.T) {
	assert.True(t, Coordinates{0, 0}.IsZero())
	assert.False(t, JFK.IsZero())
	assert.False(t, Coordinates{0, 1}.IsZero())
}

func BenchmarkHaversine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Haversine(JFK.Lat, JFK.Lon, LAX.Lat, LAX.Lon)
	}
}
