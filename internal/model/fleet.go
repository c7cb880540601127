package model

import (
	"time"

	"gorm.io/gorm"
)

// VehicleMotionState represents whether a simulated vehicle is moving
type VehicleMotionState int

const (
	VehicleStateMoving VehicleMotionState = iota
	VehicleStateIdle
)

// FleetVehicle is the unified model for a simulated rescue vehicle (used
// for PostgreSQL, Redis and memory storage).
type FleetVehicle struct {
	ID           string             `json:"id" gorm:"primaryKey"`
	PlateNumber  string             `json:"plate_number" gorm:"size:32;not null"`
	Code         string             `json:"code" gorm:"size:32"`
	CategoryName string             `json:"category_name" gorm:"size:64"`
	Icon         string             `json:"icon" gorm:"size:128"`
	SpeedMS      float64            `json:"speed_ms" gorm:"not null"`
	Route        string             `json:"route" gorm:"type:text"`
	State        VehicleMotionState `json:"state" gorm:"not null"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`

	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`

	// Decoded route and progress along it, memory only.
	RoutePoints    [][2]float64 `json:"-" gorm:"-"`
	NextPointIndex int          `json:"-" gorm:"-"`
}

// TableName keeps the table aligned with the ResQ naming
func (FleetVehicle) TableName() string { return "fleet_vehicles" }

// ToLightVersion returns a lighter version of the vehicle for Redis
func (v *FleetVehicle) ToLightVersion() *FleetVehicle {
	return &FleetVehicle{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Code:        v.Code,
		Icon:        v.Icon,
		SpeedMS:     v.SpeedMS,
		State:       v.State,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToLocationUpdate converts the vehicle's current state into the event
// shape shared with the livemap side.
func (v *FleetVehicle) ToLocationUpdate() LocationUpdate {
	last := v.UpdatedAt
	return LocationUpdate{
		VehicleID: v.ID,
		Position:  Position{Latitude: v.Latitude, Longitude: v.Longitude},
		Meta: VehicleMeta{
			PlateNumber: v.PlateNumber,
			Code:        v.Code,
			Icons:       iconsOf(v.Icon),
		},
		Active:     v.State == VehicleStateMoving,
		LastActive: &last,
	}
}

func iconsOf(icon string) []string {
	if icon == "" {
		return nil
	}
	return []string{icon}
}
