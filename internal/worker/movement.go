package worker

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/sim"
)

// StartMovementWorker starts the worker that advances the simulated
// fleet and broadcasts the resulting location events.
func StartMovementWorker(svc *sim.FleetService, hub *sim.Hub) {
	ticker := time.NewTicker(config.MovementWorkerInterval)
	go func() {
		for range ticker.C {
			for _, evt := range svc.ProcessMovements() {
				hub.Broadcast(evt)
			}
		}
	}()

	log.Info("Movement worker started with interval: ", config.MovementWorkerInterval)
}
