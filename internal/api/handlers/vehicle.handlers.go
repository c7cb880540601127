package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Althaf00710/resq-livemap/internal/filter"
	"github.com/Althaf00710/resq-livemap/internal/tracker"
)

// vehicleRow is one entry of the vehicle list endpoint. The list stays
// usable even when the browser-side map provider fails to load.
type vehicleRow struct {
	ID          string  `json:"id"`
	PlateNumber string  `json:"plateNumber,omitempty"`
	Code        string  `json:"code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Active      bool    `json:"active"`
	Address     string  `json:"address,omitempty"`
	Stale       bool    `json:"stale"`
	LastActive  string  `json:"lastActive"`
}

// SetupVehicleHandlers registers the vehicle list endpoints
func SetupVehicleHandlers(router *gin.RouterGroup, store *tracker.Store) {
	router.GET("/vehicles", func(c *gin.Context) {
		search := c.Query("search")
		now := time.Now()

		rows := make([]vehicleRow, 0, store.Count())
		for _, v := range store.All() {
			if !filter.Matches(search, v.Meta) {
				continue
			}
			rows = append(rows, vehicleRow{
				ID:          v.ID,
				PlateNumber: v.Meta.PlateNumber,
				Code:        v.Meta.Code,
				Latitude:    v.Position.Latitude,
				Longitude:   v.Position.Longitude,
				Active:      v.Active,
				Address:     v.Address,
				Stale:       tracker.IsStale(v.LastActiveAt, now),
				LastActive:  tracker.RelativeAge(v.LastActiveAt, now),
			})
		}

		c.JSON(200, gin.H{
			"count":    len(rows),
			"vehicles": rows,
		})
	})
}
