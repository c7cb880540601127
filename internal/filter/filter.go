// Package filter decides marker visibility from the free-text search box.
// It operates purely at presentation time and never touches stored
// position or staleness data.
package filter

import (
	"strings"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// Matches reports whether a vehicle's label fields match the query. The
// match is a case-insensitive substring test over the concatenated plate
// number and code. An empty or whitespace-only query matches everything.
func Matches(query string, meta model.VehicleMeta) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	hay := strings.ToLower(meta.PlateNumber + " " + meta.Code)
	return strings.Contains(hay, q)
}
