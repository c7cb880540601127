package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// flexID accepts both string and numeric ids; the platform API has
// returned either depending on the resolver.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type emergencyCategoryNode struct {
	Icon string `json:"icon"`
}

type emergencyToVehicleNode struct {
	EmergencyCategory *emergencyCategoryNode `json:"emergencyCategory"`
}

type vehicleCategoryNode struct {
	EmergencyToVehicles []*emergencyToVehicleNode `json:"emergencyToVehicles"`
}

type vehicleNode struct {
	PlateNumber           string               `json:"plateNumber"`
	Code                  string               `json:"code"`
	RescueVehicleCategory *vehicleCategoryNode `json:"rescueVehicleCategory"`
}

type locationNode struct {
	RescueVehicleID flexID       `json:"rescueVehicleId"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	RescueVehicle   *vehicleNode `json:"rescueVehicle"`
	Active          bool         `json:"active"`
	Address         string       `json:"address"`
	LastActive      *string      `json:"lastActive"`
}

// toUpdate validates a wire node and converts it to the domain shape.
// Nodes without an id or with non-finite coordinates are rejected so a
// bad event can never corrupt a tracked vehicle.
func (n locationNode) toUpdate() (model.LocationUpdate, error) {
	u := model.LocationUpdate{
		VehicleID: string(n.RescueVehicleID),
		Position:  model.Position{Latitude: n.Latitude, Longitude: n.Longitude},
		Active:    n.Active,
		Address:   n.Address,
	}
	if u.VehicleID == "" {
		return u, fmt.Errorf("location node without rescueVehicleId")
	}
	if !u.Position.Valid() {
		return u, fmt.Errorf("location node %s with non-finite coordinates", u.VehicleID)
	}
	if n.RescueVehicle != nil {
		u.Meta.PlateNumber = n.RescueVehicle.PlateNumber
		u.Meta.Code = n.RescueVehicle.Code
		if cat := n.RescueVehicle.RescueVehicleCategory; cat != nil {
			for _, etv := range cat.EmergencyToVehicles {
				if etv != nil && etv.EmergencyCategory != nil && etv.EmergencyCategory.Icon != "" {
					u.Meta.Icons = append(u.Meta.Icons, etv.EmergencyCategory.Icon)
				}
			}
		}
	}
	if n.LastActive != nil && *n.LastActive != "" {
		t, err := time.Parse(time.RFC3339, *n.LastActive)
		if err != nil {
			// Keep the event, drop only the unreadable timestamp; the
			// vehicle will show as never observed directly.
			return u, nil
		}
		u.LastActive = &t
	}
	return u, nil
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type locationsResponse struct {
	Data struct {
		RescueVehicleLocations []locationNode `json:"rescueVehicleLocations"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type locationEventPayload struct {
	Data struct {
		OnVehicleLocationShare *locationNode `json:"onVehicleLocationShare"`
	} `json:"data"`
}
