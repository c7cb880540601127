package sim

import (
	"encoding/json"
	"strings"

	"github.com/Althaf00710/resq-livemap/internal/util"
)

// ParseRoute turns a stored route string into lat/lng waypoints. Routes
// imported from planning tools arrive as encoded polylines; the built-in
// seed uses plain JSON arrays of [lat, lng] pairs.
func ParseRoute(route string) [][2]float64 {
	route = strings.TrimSpace(route)
	if route == "" {
		return nil
	}
	if strings.HasPrefix(route, "[") {
		var points [][2]float64
		if err := json.Unmarshal([]byte(route), &points); err != nil {
			return nil
		}
		return points
	}
	return util.DecodePolyline(route)
}
