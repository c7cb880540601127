package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Althaf00710/resq-livemap/internal/model"
	"github.com/Althaf00710/resq-livemap/internal/tracker"
)

type vehicleListResponse struct {
	Count    int          `json:"count"`
	Vehicles []vehicleRow `json:"vehicles"`
}

func listStore() *tracker.Store {
	store := tracker.NewStore(nil)
	fresh := time.Now()
	old := time.Now().Add(-10 * time.Minute)
	store.ApplySnapshot([]model.LocationUpdate{
		{
			VehicleID:  "v-1",
			Position:   model.Position{Latitude: 6.9271, Longitude: 79.8612},
			Meta:       model.VehicleMeta{PlateNumber: "ABC-1234", Code: "AMB-07"},
			Active:     true,
			Address:    "Colombo",
			LastActive: &fresh,
		},
		{
			VehicleID:  "v-2",
			Position:   model.Position{Latitude: 7.2906, Longitude: 80.6337},
			Meta:       model.VehicleMeta{PlateNumber: "XYZ-5678", Code: "FIRE-02"},
			Active:     false,
			LastActive: &old,
		},
	})
	return store
}

func vehiclesRequest(t *testing.T, store *tracker.Store, path string) vehicleListResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupVehicleHandlers(r.Group("/api"), store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out vehicleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestVehicleList(t *testing.T) {
	out := vehiclesRequest(t, listStore(), "/api/vehicles")
	require.Equal(t, 2, out.Count)

	byID := map[string]vehicleRow{}
	for _, row := range out.Vehicles {
		byID[row.ID] = row
	}

	v1 := byID["v-1"]
	assert.Equal(t, "ABC-1234", v1.PlateNumber)
	assert.Equal(t, "Colombo", v1.Address)
	assert.False(t, v1.Stale)
	assert.Equal(t, "0s ago", v1.LastActive)

	// Silent for ten minutes: still listed, flagged stale.
	v2 := byID["v-2"]
	assert.True(t, v2.Stale)
	assert.Equal(t, "10m ago", v2.LastActive)
}

func TestVehicleListSearch(t *testing.T) {
	store := listStore()

	out := vehiclesRequest(t, store, "/api/vehicles?search=abc")
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "v-1", out.Vehicles[0].ID)

	out = vehiclesRequest(t, store, "/api/vehicles?search=fire")
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "v-2", out.Vehicles[0].ID)

	out = vehiclesRequest(t, store, "/api/vehicles?search=zzz")
	assert.Equal(t, 0, out.Count)
	assert.NotNil(t, out.Vehicles)
}

func TestVehicleListEmptyStore(t *testing.T) {
	out := vehiclesRequest(t, tracker.NewStore(nil), "/api/vehicles")
	assert.Equal(t, 0, out.Count)
}
