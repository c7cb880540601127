package sim

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

// Wire shapes mirroring the platform schema, nested the way the admin
// console's query selects them.

type wireEmergencyCategory struct {
	Icon string `json:"icon"`
}

type wireEmergencyToVehicle struct {
	EmergencyCategory wireEmergencyCategory `json:"emergencyCategory"`
}

type wireVehicleCategory struct {
	EmergencyToVehicles []wireEmergencyToVehicle `json:"emergencyToVehicles"`
}

type wireVehicle struct {
	PlateNumber           string              `json:"plateNumber"`
	Code                  string              `json:"code"`
	RescueVehicleCategory wireVehicleCategory `json:"rescueVehicleCategory"`
}

type wireLocation struct {
	RescueVehicleID string      `json:"rescueVehicleId"`
	Latitude        float64     `json:"latitude"`
	Longitude       float64     `json:"longitude"`
	RescueVehicle   wireVehicle `json:"rescueVehicle"`
	Active          bool        `json:"active"`
	Address         string      `json:"address,omitempty"`
	LastActive      *string     `json:"lastActive"`
}

func toWireLocation(evt model.LocationUpdate) wireLocation {
	w := wireLocation{
		RescueVehicleID: evt.VehicleID,
		Latitude:        evt.Position.Latitude,
		Longitude:       evt.Position.Longitude,
		Active:          evt.Active,
		Address:         evt.Address,
	}
	w.RescueVehicle.PlateNumber = evt.Meta.PlateNumber
	w.RescueVehicle.Code = evt.Meta.Code
	for _, icon := range evt.Meta.Icons {
		w.RescueVehicle.RescueVehicleCategory.EmergencyToVehicles = append(
			w.RescueVehicle.RescueVehicleCategory.EmergencyToVehicles,
			wireEmergencyToVehicle{EmergencyCategory: wireEmergencyCategory{Icon: icon}},
		)
	}
	if evt.LastActive != nil {
		ts := evt.LastActive.UTC().Format(time.RFC3339)
		w.LastActive = &ts
	}
	return w
}

func locationEventEnvelope(evt model.LocationUpdate) gin.H {
	return gin.H{
		"data": gin.H{
			"onVehicleLocationShare": toWireLocation(evt),
		},
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:  func(r *http.Request) bool { return true },
	Subprotocols: []string{"graphql-transport-ws"},
}

// SetupRoutes registers the simulator's GraphQL endpoints: the locations
// query over POST and the location-share subscription over websocket,
// both on /graphql.
func SetupRoutes(r *gin.Engine, svc *FleetService, hub *Hub) {
	r.POST("/graphql", func(c *gin.Context) {
		var req struct {
			Query string `json:"query"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "invalid request body"}},
			})
			return
		}

		if !strings.Contains(req.Query, "rescueVehicleLocations") {
			c.JSON(http.StatusOK, gin.H{
				"errors": []gin.H{{"message": "unsupported operation"}},
			})
			return
		}

		snapshot := svc.Snapshot()
		nodes := make([]wireLocation, 0, len(snapshot))
		for _, evt := range snapshot {
			nodes = append(nodes, toWireLocation(evt))
		}
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"rescueVehicleLocations": nodes},
		})
	})

	r.GET("/graphql", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warnf("Subscription upgrade failed: %v", err)
			return
		}
		hub.HandleConnection(conn)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"vehicles":    svc.Count(),
			"subscribers": hub.SubscriberCount(),
		})
	})
}
