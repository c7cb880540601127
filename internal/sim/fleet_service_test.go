package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/service/storage"
	"github.com/Althaf00710/resq-livemap/internal/util"
)

func newTestFleet() *FleetService {
	return &FleetService{
		storage: storage.NewMemoryStorage[string, *model.FleetVehicle](),
	}
}

func rewind(s *FleetService, d time.Duration) {
	s.storage.ForEach(func(id string, v *model.FleetVehicle) bool {
		v.UpdatedAt = v.UpdatedAt.Add(-d)
		s.storage.Set(id, v)
		return true
	})
}

func TestSeedBuiltinFleet(t *testing.T) {
	s := newTestFleet()
	s.seedBuiltinFleet()

	assert.Equal(t, len(builtinFleet), s.Count())

	v, ok := s.storage.Get("veh-amb-01")
	require.True(t, ok)
	assert.Equal(t, "WP CAB-1234", v.PlateNumber)
	assert.Equal(t, model.VehicleStateMoving, v.State)
	assert.False(t, v.UpdatedAt.IsZero())

	// Snapshot carries the nested event shape, icon included.
	var amb model.LocationUpdate
	for _, evt := range s.Snapshot() {
		if evt.VehicleID == "veh-amb-01" {
			amb = evt
		}
	}
	require.Equal(t, "veh-amb-01", amb.VehicleID)
	assert.Equal(t, []string{"mdi:ambulance"}, amb.Meta.Icons)
	assert.True(t, amb.Active)
	require.NotNil(t, amb.LastActive)
}

func TestProcessMovementsAdvancesMovingVehicles(t *testing.T) {
	s := newTestFleet()
	s.seedBuiltinFleet()
	before := map[string]model.Position{}
	for _, evt := range s.Snapshot() {
		before[evt.VehicleID] = evt.Position
	}

	rewind(s, 10*time.Second)
	events := s.ProcessMovements()

	// Every moving vehicle emits one event; the parked unit stays silent.
	require.Len(t, events, 4)
	for _, evt := range events {
		assert.NotEqual(t, "veh-rescue-05", evt.VehicleID)
		assert.True(t, evt.Position.Valid())
		assert.NotEqual(t, before[evt.VehicleID], evt.Position)

		// 10s at seeded speeds keeps displacement well under a kilometer.
		prev := before[evt.VehicleID]
		d := util.HaversineDistance(prev.Latitude, prev.Longitude, evt.Position.Latitude, evt.Position.Longitude)
		assert.Less(t, d, 1000.0)
	}
}

func TestProcessMovementsImmediatelyIsQuiet(t *testing.T) {
	s := newTestFleet()
	s.seedBuiltinFleet()

	// No time has passed since seeding, so nothing has moved.
	assert.Empty(t, s.ProcessMovements())
}

func TestLongPauseIsCapped(t *testing.T) {
	s := newTestFleet()
	s.seedBuiltinFleet()
	start := map[string]model.Position{}
	for _, evt := range s.Snapshot() {
		start[evt.VehicleID] = evt.Position
	}

	rewind(s, 30*time.Minute)
	events := s.ProcessMovements()
	require.NotEmpty(t, events)

	for _, evt := range events {
		prev := start[evt.VehicleID]
		d := util.HaversineDistance(prev.Latitude, prev.Longitude, evt.Position.Latitude, evt.Position.Longitude)
		v, _ := s.storage.Get(evt.VehicleID)
		// At most 60s worth of travel regardless of the pause length.
		assert.LessOrEqual(t, d, v.SpeedMS*60+1)
	}
}

func TestVehicleWithoutRouteStaysPut(t *testing.T) {
	s := newTestFleet()
	s.storage.Set("v-norooute", &model.FleetVehicle{
		ID:        "v-norooute",
		SpeedMS:   10,
		State:     model.VehicleStateMoving,
		Latitude:  6.9,
		Longitude: 79.8,
		UpdatedAt: time.Now().Add(-10 * time.Second),
	})

	assert.Empty(t, s.ProcessMovements())
	v, _ := s.storage.Get("v-norooute")
	assert.Equal(t, 6.9, v.Latitude)
}

func TestRouteWrapsAround(t *testing.T) {
	s := newTestFleet()
	// Two waypoints 30m or so apart; fast vehicle laps the route within
	// the capped elapsed window.
	s.storage.Set("v-lap", &model.FleetVehicle{
		ID:        "v-lap",
		SpeedMS:   50,
		State:     model.VehicleStateMoving,
		Latitude:  6.90000,
		Longitude: 79.80000,
		Route:     `[[6.90000,79.80000],[6.90030,79.80000]]`,
		UpdatedAt: time.Now().Add(-20 * time.Second),
	})

	events := s.ProcessMovements()
	require.Len(t, events, 1)
	pos := events[0].Position
	assert.False(t, math.IsNaN(pos.Latitude))
	// Still on the segment between the two waypoints.
	assert.GreaterOrEqual(t, pos.Latitude, 6.89999)
	assert.LessOrEqual(t, pos.Latitude, 6.90031)
	assert.InDelta(t, 79.8, pos.Longitude, 1e-6)
}

func TestMergeRedisVehicles(t *testing.T) {
	s := newTestFleet()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	s.storage.Set("v-1", &model.FleetVehicle{
		ID: "v-1", Route: "[[1,2],[3,4]]", CategoryName: "Ambulance",
		Latitude: 6.9, Longitude: 79.8, UpdatedAt: older,
	})
	s.storage.Set("v-2", &model.FleetVehicle{
		ID: "v-2", Latitude: 7.0, Longitude: 80.0, UpdatedAt: newer,
	})

	merged := s.mergeRedisVehicles(map[string]*model.FleetVehicle{
		// Newer light copy: wins, but keeps the route and category.
		"v-1": {ID: "v-1", Latitude: 6.95, Longitude: 79.85, UpdatedAt: newer},
		// Older copy: ignored.
		"v-2": {ID: "v-2", Latitude: 0, Longitude: 0, UpdatedAt: older},
		// Unknown vehicle: adopted as-is.
		"v-3": {ID: "v-3", Latitude: 5.9, Longitude: 80.5, UpdatedAt: newer},
	})
	assert.Equal(t, 2, merged)

	v1, _ := s.storage.Get("v-1")
	assert.Equal(t, 6.95, v1.Latitude)
	assert.Equal(t, "[[1,2],[3,4]]", v1.Route)
	assert.Equal(t, "Ambulance", v1.CategoryName)

	v2, _ := s.storage.Get("v-2")
	assert.Equal(t, 7.0, v2.Latitude)

	_, ok := s.storage.Get("v-3")
	assert.True(t, ok)
}
