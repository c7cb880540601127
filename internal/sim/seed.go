package sim

import (
	"time"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// Built-in fleet used when neither PostgreSQL nor Redis provides data:
// a handful of rescue vehicles looping around Colombo, Kandy and Galle.
var builtinFleet = []*model.FleetVehicle{
	{
		ID:           "veh-amb-01",
		PlateNumber:  "WP CAB-1234",
		Code:         "AMB-01",
		CategoryName: "Ambulance",
		Icon:         "mdi:ambulance",
		SpeedMS:      14,
		State:        model.VehicleStateMoving,
		Latitude:     6.9271,
		Longitude:    79.8612,
		Route:        `[[6.9271,79.8612],[6.9319,79.8478],[6.9388,79.8542],[6.9344,79.8690],[6.9271,79.8612]]`,
	},
	{
		ID:           "veh-amb-02",
		PlateNumber:  "WP CAC-5678",
		Code:         "AMB-02",
		CategoryName: "Ambulance",
		Icon:         "mdi:ambulance",
		SpeedMS:      12,
		State:        model.VehicleStateMoving,
		Latitude:     6.9061,
		Longitude:    79.8730,
		Route:        `[[6.9061,79.8730],[6.9147,79.8776],[6.9270,79.8770],[6.9190,79.8660],[6.9061,79.8730]]`,
	},
	{
		ID:           "veh-fire-01",
		PlateNumber:  "CP FD-0190",
		Code:         "FIRE-01",
		CategoryName: "Fire Truck",
		Icon:         "mdi:fire-truck",
		SpeedMS:      10,
		State:        model.VehicleStateMoving,
		Latitude:     7.2906,
		Longitude:    80.6337,
		Route:        `[[7.2906,80.6337],[7.2956,80.6411],[7.3010,80.6340],[7.2948,80.6270],[7.2906,80.6337]]`,
	},
	{
		ID:           "veh-marine-01",
		PlateNumber:  "SP MR-2205",
		Code:         "MAR-01",
		CategoryName: "Marine Rescue",
		Icon:         "mdi:lifebuoy",
		SpeedMS:      8,
		State:        model.VehicleStateMoving,
		Latitude:     6.0329,
		Longitude:    80.2168,
		Route:        `[[6.0329,80.2168],[6.0391,80.2248],[6.0450,80.2150],[6.0380,80.2080],[6.0329,80.2168]]`,
	},
	{
		// Parked unit: no route, goes stale on the map over time.
		ID:           "veh-rescue-05",
		PlateNumber:  "WP RS-7788",
		Code:         "RES-05",
		CategoryName: "Rescue",
		Icon:         "",
		SpeedMS:      0,
		State:        model.VehicleStateIdle,
		Latitude:     6.8696,
		Longitude:    79.8997,
	},
}

func (s *FleetService) seedBuiltinFleet() {
	now := time.Now()
	for _, v := range builtinFleet {
		seeded := *v
		seeded.UpdatedAt = now
		s.storage.Set(seeded.ID, &seeded)
	}
}
