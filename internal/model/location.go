package model

import (
	"math"
	"time"
)

// Position is a latitude/longitude pair in degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite numbers.
func (p Position) Valid() bool {
	return !math.IsNaN(p.Latitude) && !math.IsInf(p.Latitude, 0) &&
		!math.IsNaN(p.Longitude) && !math.IsInf(p.Longitude, 0)
}

// VehicleMeta carries the short label fields and the emergency-category
// icons resolved through the vehicle's category mapping.
type VehicleMeta struct {
	PlateNumber string   `json:"plateNumber"`
	Code        string   `json:"code"`
	Icons       []string `json:"icons,omitempty"`
}

// Title returns the label shown on the marker: plate number, then code,
// then a generic fallback.
func (m VehicleMeta) Title() string {
	if m.PlateNumber != "" {
		return m.PlateNumber
	}
	if m.Code != "" {
		return m.Code
	}
	return "Vehicle"
}

// FirstIcon returns the first non-empty emergency-category icon, if any.
func (m VehicleMeta) FirstIcon() (string, bool) {
	for _, icon := range m.Icons {
		if icon != "" {
			return icon, true
		}
	}
	return "", false
}

// LocationUpdate is one row of the locations snapshot or one subscription
// event; both share the same shape.
type LocationUpdate struct {
	VehicleID  string      `json:"rescueVehicleId"`
	Position   Position    `json:"position"`
	Meta       VehicleMeta `json:"meta"`
	Active     bool        `json:"active"`
	Address    string      `json:"address,omitempty"`
	LastActive *time.Time  `json:"lastActive,omitempty"`
}

// TrackedVehicle is one vehicle with a known position, as held by the
// position store. PrevPosition is kept only between one update and the
// next to drive marker interpolation; there is no longer trail.
type TrackedVehicle struct {
	ID           string
	Position     Position
	PrevPosition *Position
	Meta         VehicleMeta
	Active       bool
	Address      string
	LastActiveAt *time.Time
}
