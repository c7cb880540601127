package projector

import (
	"github.com/Althaf00710/resq-livemap/internal/model"
)

// InterpolatePath returns the successive marker positions for a glide
// from one position to another: frames points linearly spaced, the last
// being exactly the target.
func InterpolatePath(from, to model.Position, frames int) []model.Position {
	if frames < 1 {
		return []model.Position{to}
	}
	out := make([]model.Position, frames)
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		out[i-1] = model.Position{
			Latitude:  from.Latitude + (to.Latitude-from.Latitude)*t,
			Longitude: from.Longitude + (to.Longitude-from.Longitude)*t,
		}
	}
	out[frames-1] = to
	return out
}
