package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// One degree of longitude on the equator is about 111.2 km.
	d := HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 200)

	assert.Equal(t, 0.0, HaversineDistance(6.9271, 79.8612, 6.9271, 79.8612))
}

func TestMoveToward(t *testing.T) {
	// Halfway along the equatorial degree lands near 0.5 degrees east.
	half := HaversineDistance(0, 0, 0, 1) / 2
	p := MoveToward(0, 0, 0, 1, half)
	assert.InDelta(t, 0.0, p[0], 1e-6)
	assert.InDelta(t, 0.5, p[1], 1e-3)

	// Overshooting clamps at the destination.
	p = MoveToward(6.9271, 79.8612, 6.9319, 79.8478, 1e9)
	assert.Equal(t, [2]float64{6.9319, 79.8478}, p)

	// Zero remaining distance between identical points stays put.
	p = MoveToward(6.9, 79.8, 6.9, 79.8, 100)
	assert.Equal(t, [2]float64{6.9, 79.8}, p)
}

func TestDecodePolyline(t *testing.T) {
	// Canonical vector from the polyline format documentation.
	points := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0][0], 1e-5)
	assert.InDelta(t, -120.2, points[0][1], 1e-5)
	assert.InDelta(t, 40.7, points[1][0], 1e-5)
	assert.InDelta(t, -120.95, points[1][1], 1e-5)
	assert.InDelta(t, 43.252, points[2][0], 1e-5)
	assert.InDelta(t, -126.453, points[2][1], 1e-5)

	assert.Empty(t, DecodePolyline(""))
}

func TestGenerateUniqueID(t *testing.T) {
	a, err := GenerateUniqueID(8)
	require.NoError(t, err)
	b, err := GenerateUniqueID(8)
	require.NoError(t, err)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}
