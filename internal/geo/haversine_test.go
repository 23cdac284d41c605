package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name     string
		points   [4]float64 // lat1, lon1, lat2, lon2
		distance float64
	}{
		{
			name:     "same point",
			points:   [4]float64{40.75, -73.98, 40.75, -73.98},
			distance: 0,
		},
		{
			name:     "midtown hop",
			points:   [4]float64{40.75, -73.98, 40.76, -73.97},
			distance: 1.39496169,
		},
		{
			name:     "lower manhattan to jfk",
			points:   [4]float64{40.7128, -74.0060, 40.6413, -73.7781},
			distance: 20.7982995,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := test.points
			assert.InDelta(t, test.distance, Haversine(p[0], p[1], p[2], p[3]), 1e-6)
		})
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{40.75, -73.98, 40.76, -73.97},
		{40.5, -74.3, 40.9, -73.7},
		{40.6413, -73.7781, 40.7769, -73.8740},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-12)
	}
}

func TestHaversine_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Haversine(math.NaN(), -73.98, 40.76, -73.97)))
}

func BenchmarkHaversine(b *testing.B) {
	for n := 0; n < b.N; n++ {
		Haversine(40.75, -73.98, 40.76, -73.97)
	}
}
