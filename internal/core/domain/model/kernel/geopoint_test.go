package kernel_test

import (
	"math"
	"testing"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create valid point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(51.5007, -0.1246)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 51.5007, p.Latitude(), 1e-9)
		assert.InDelta(t, -0.1246, p.Longitude(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		cases := []struct {
			name     string
			lat, lng float64
		}{
			{"north pole", 90, 0},
			{"south pole", -90, 0},
			{"antimeridian east", 0, 180},
			{"antimeridian west", 0, -180},
			{"origin", 0, 0},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				p, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.NoError(t, err)
				require.NoError(t, p.Validate())
			})
		}
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		cases := []struct {
			name     string
			lat, lng float64
		}{
			{"latitude too high", 90.0001, 0},
			{"latitude too low", -90.0001, 0},
			{"longitude too high", 0, 180.0001},
			{"longitude too low", 0, -180.0001},
			{"latitude NaN", math.NaN(), 0},
			{"longitude NaN", 0, math.NaN()},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.Error(t, err)
			})
		}
	})

	t.Run("should collect both validation errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPointValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo point must be created")
	})
}

func TestGeoPointIsEqual(t *testing.T) {
	t.Run("equal points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(40.7128, -74.0060)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		p2, _ := kernel.NewGeoPoint(34.0522, -118.2437)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPointDistanceTo(t *testing.T) {
	t.Run("known distance between city landmarks", func(t *testing.T) {
		// Big Ben to the London Eye, roughly 450-460 m apart.
		bigBen, _ := kernel.NewGeoPoint(51.5007, -0.1246)
		londonEye, _ := kernel.NewGeoPoint(51.5033, -0.1196)

		meters, err := bigBen.DistanceTo(londonEye)

		require.NoError(t, err)
		assert.InDelta(t, 450, meters, 30)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		b, _ := kernel.NewGeoPoint(52.5200, 13.4050)

		forward, err := a.DistanceTo(b)
		require.NoError(t, err)
		backward, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InDelta(t, forward, backward, 1e-6)
	})

	t.Run("distance to self is zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(35.6762, 139.6503)

		meters, err := p.DistanceTo(p)

		require.NoError(t, err)
		assert.InDelta(t, 0, meters, 1e-6)
	})

	t.Run("quarter of the meridian", func(t *testing.T) {
		equator, _ := kernel.NewGeoPoint(0, 0)
		pole, _ := kernel.NewGeoPoint(90, 0)

		meters, err := equator.DistanceTo(pole)

		require.NoError(t, err)
		// pi/2 * R
		assert.InDelta(t, math.Pi/2*6371000, meters, 1)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(0, 0)
		var zero kernel.GeoPoint

		_, err := p.DistanceTo(zero)

		require.Error(t, err)
	})
}

func TestGeoPointString(t *testing.T) {
	p, _ := kernel.NewGeoPoint(51.5007, -0.1246)

	assert.Equal(t, "GeoPoint(51.500700,-0.124600)", p.String())
}
