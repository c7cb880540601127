package worker

import (
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/sim"
)

// StartAllWorkers initializes and starts all simulator background workers
func StartAllWorkers(svc *sim.FleetService, hub *sim.Hub) {
	log.Info("Starting all workers...")

	StartMovementWorker(svc, hub)
	svc.StartPersistenceWorkers(config.RedisBackupInterval, config.PostgresBackupInterval)

	log.Info("All workers started")
}
