package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

func TestInterpolatePathTwelveFrames(t *testing.T) {
	from := model.Position{Latitude: 6.9271, Longitude: 79.8612}
	to := model.Position{Latitude: 6.9280, Longitude: 79.8620}

	path := InterpolatePath(from, to, 12)
	require.Len(t, path, 12)

	for k := 1; k <= 12; k++ {
		tFrac := float64(k) / 12
		assert.InDelta(t, from.Latitude+(to.Latitude-from.Latitude)*tFrac, path[k-1].Latitude, 1e-12)
		assert.InDelta(t, from.Longitude+(to.Longitude-from.Longitude)*tFrac, path[k-1].Longitude, 1e-12)
	}

	// The final frame lands exactly on the target, no rounding residue.
	assert.Equal(t, to, path[11])
}

func TestInterpolatePathDegenerate(t *testing.T) {
	from := model.Position{Latitude: 6.9, Longitude: 79.8}
	to := model.Position{Latitude: 7.0, Longitude: 80.0}

	assert.Equal(t, []model.Position{to}, InterpolatePath(from, to, 0))
	assert.Equal(t, []model.Position{to}, InterpolatePath(from, to, -3))

	// Zero-distance glide still terminates on the target.
	same := InterpolatePath(to, to, 12)
	require.Len(t, same, 12)
	for _, p := range same {
		assert.Equal(t, to, p)
	}
}
