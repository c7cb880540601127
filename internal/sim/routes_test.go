package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	assert.Nil(t, ParseRoute(""))
	assert.Nil(t, ParseRoute("   "))
	assert.Nil(t, ParseRoute("[not json"))

	points := ParseRoute(`[[6.9271,79.8612],[6.9319,79.8478]]`)
	require.Len(t, points, 2)
	assert.Equal(t, [2]float64{6.9271, 79.8612}, points[0])

	// Encoded polylines from route planning tools.
	decoded := ParseRoute("_p~iF~ps|U_ulLnnqC")
	require.Len(t, decoded, 2)
	assert.InDelta(t, 38.5, decoded[0][0], 1e-5)
	assert.InDelta(t, -120.2, decoded[0][1], 1e-5)
}
