package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKmToMiles(t *testing.T) {
	assert.Equal(t, 0.621371, KmToMiles(1))
	assert.Equal(t, 0.0, KmToMiles(0))
	assert.InDelta(t, 62.1371, KmToMiles(100), 1e-9)
}

func TestMilesRoundTrip(t *testing.T) {
	for _, km := range []float64{0, 0.001, 1, 1.33, 42.195, 20037.5} {
		assert.InDelta(t, km, MilesToKm(KmToMiles(km)), 1e-9)
	}
}

func TestAngleConversion(t *testing.T) {
	assert.InDelta(t, math.Pi, RadFromDeg(180), 1e-12)
	assert.InDelta(t, math.Pi/2, RadFromDeg(90), 1e-12)
	assert.InDelta(t, 33.5, DegFromRad(RadFromDeg(33.5)), 1e-12)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Miles, Kilometers.Toggle())
	assert.Equal(t, Kilometers, Miles.Toggle())
	assert.Equal(t, Radians, Degrees.Toggle())
	assert.Equal(t, Degrees, Radians.Toggle())
}

func TestParseUnits(t *testing.T) {
	u, err := ParseDistanceUnit("miles")
	require.NoError(t, err)
	assert.Equal(t, Miles, u)

	_, err = ParseDistanceUnit("furlongs")
	assert.Error(t, err)

	a, err := ParseAngleUnit("rad")
	require.NoError(t, err)
	assert.Equal(t, Radians, a)

	_, err = ParseAngleUnit("grad")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.33 km", FormatDistance(1.3296, Kilometers))
	assert.Equal(t, "0.83 miles", FormatDistance(1.3296, Miles))
	assert.Equal(t, "90.00°", FormatAngle(90, Degrees))
	assert.Equal(t, "1.57 rad", FormatAngle(90, Radians))
}
