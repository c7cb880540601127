package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotFixture = `{
  "data": {
    "rescueVehicleLocations": [
      {
        "rescueVehicleId": "v-1",
        "latitude": 6.9271,
        "longitude": 79.8612,
        "active": true,
        "address": "Colombo",
        "lastActive": "2025-08-01T12:00:00Z",
        "rescueVehicle": {
          "plateNumber": "ABC-1234",
          "code": "AMB-07",
          "rescueVehicleCategory": {
            "emergencyToVehicles": [
              {"emergencyCategory": {"icon": "mdi:ambulance"}},
              {"emergencyCategory": {"icon": ""}},
              {"emergencyCategory": null}
            ]
          }
        }
      },
      {
        "rescueVehicleId": 42,
        "latitude": 7.2906,
        "longitude": 80.6337,
        "active": false,
        "lastActive": null
      },
      {
        "latitude": 1.0,
        "longitude": 2.0,
        "active": true
      },
      {
        "rescueVehicleId": "v-bad-time",
        "latitude": 6.0,
        "longitude": 80.0,
        "active": true,
        "lastActive": "yesterday-ish"
      }
    ]
  }
}`

func TestFetchLocations(t *testing.T) {
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, snapshotFixture)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	updates, err := c.FetchLocations(context.Background())
	require.NoError(t, err)

	var req graphqlRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Contains(t, req.Query, "rescueVehicleLocations")

	// The id-less row is dropped; everything else survives.
	require.Len(t, updates, 3)

	full := updates[0]
	assert.Equal(t, "v-1", full.VehicleID)
	assert.Equal(t, 6.9271, full.Position.Latitude)
	assert.Equal(t, "ABC-1234", full.Meta.PlateNumber)
	assert.Equal(t, "AMB-07", full.Meta.Code)
	assert.Equal(t, []string{"mdi:ambulance"}, full.Meta.Icons)
	assert.True(t, full.Active)
	assert.Equal(t, "Colombo", full.Address)
	require.NotNil(t, full.LastActive)
	assert.Equal(t, time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC), full.LastActive.UTC())

	// Numeric ids are normalized to strings.
	numeric := updates[1]
	assert.Equal(t, "42", numeric.VehicleID)
	assert.Nil(t, numeric.LastActive)

	// An unreadable timestamp loses only the timestamp, not the row.
	badTime := updates[2]
	assert.Equal(t, "v-bad-time", badTime.VehicleID)
	assert.Nil(t, badTime.LastActive)
}

func TestFetchLocationsEmptyFleet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{"rescueVehicleLocations":[]}}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	updates, err := c.FetchLocations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestFetchLocationsGraphQLError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errors":[{"message":"unauthorized"}]}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.FetchLocations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestFetchLocationsBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.FetchLocations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFlexID(t *testing.T) {
	tests := []struct {
		in   string
		want flexID
	}{
		{`"abc"`, "abc"},
		{`17`, "17"},
		{`17.5`, "17.5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var f flexID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
		assert.Equal(t, tt.want, f)
	}
}
