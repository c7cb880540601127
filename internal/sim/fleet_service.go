// Package sim is the development stand-in for the ResQ platform API: a
// simulated rescue fleet moving along routes, exposed through the same
// locations query and location-share subscription the livemap consumes.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Althaf00710/resq-livemap/internal/model"
	pg "github.com/Althaf00710/resq-livemap/internal/postgres"
	redis_client "github.com/Althaf00710/resq-livemap/internal/redis"
	"github.com/Althaf00710/resq-livemap/internal/service/storage"
	"github.com/Althaf00710/resq-livemap/internal/util"
)

const vehicleRedisKey = "fleet_vehicle"

type FleetService struct {
	storage     storage.Storage[string, *model.FleetVehicle]
	initialized bool
	initMutex   sync.RWMutex
}

var (
	fleetServiceInstance *FleetService
	fleetServiceOnce     sync.Once
)

// GetFleetService returns the singleton instance of FleetService.
func GetFleetService() *FleetService {
	fleetServiceOnce.Do(func() {
		fleetServiceInstance = &FleetService{
			storage: storage.NewMemoryStorage[string, *model.FleetVehicle](),
		}
	})
	return fleetServiceInstance
}

// InitService loads the fleet into memory: PostgreSQL rows first, then
// newer Redis positions on top, then the built-in seed when both are
// empty or unconfigured.
func (s *FleetService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Info("Initializing FleetService...")
	startTime := time.Now()

	if pg.GetDB() != nil {
		vehicles, err := s.loadAllVehiclesFromPG()
		if err != nil {
			return fmt.Errorf("failed to load fleet from PostgreSQL: %w", err)
		}
		log.Infof("Loaded %d vehicles from PostgreSQL in %v", len(vehicles), time.Since(startTime))
		for _, v := range vehicles {
			s.storage.Set(v.ID, v)
		}
	}

	if redis_client.GetClient() != nil {
		redisVehicles, err := s.loadAllVehiclesFromRedis(ctx)
		if err != nil {
			return fmt.Errorf("failed to load fleet from Redis: %w", err)
		}
		merged := s.mergeRedisVehicles(redisVehicles)
		log.Infof("Merged %d newer vehicle positions from Redis", merged)
	}

	if s.storage.Count() == 0 {
		s.seedBuiltinFleet()
		log.Infof("Seeded built-in fleet: %d vehicles", s.storage.Count())
	}

	log.Infof("Initialization complete: %d vehicles in memory, took %v",
		s.storage.Count(), time.Since(startTime))

	s.initialized = true
	return nil
}

func (s *FleetService) loadAllVehiclesFromPG() ([]*model.FleetVehicle, error) {
	var vehicles []*model.FleetVehicle
	result := pg.GetDB().Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}
	return vehicles, nil
}

func (s *FleetService) loadAllVehiclesFromRedis(ctx context.Context) (map[string]*model.FleetVehicle, error) {
	client := redis_client.GetClient()
	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", vehicleRedisKey)

	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	vehicles := make(map[string]*model.FleetVehicle)
	if len(keys) == 0 {
		return vehicles, nil
	}

	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, data := range jsonData {
		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}
		v := &model.FleetVehicle{}
		if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
			continue
		}
		vehicles[v.ID] = v
	}

	return vehicles, nil
}

// mergeRedisVehicles overrides memory state with Redis positions where
// the Redis copy is newer, preserving fields the light version drops.
func (s *FleetService) mergeRedisVehicles(redisVehicles map[string]*model.FleetVehicle) int {
	merged := 0
	for id, rv := range redisVehicles {
		existing, exists := s.storage.Get(id)
		if exists && !rv.UpdatedAt.After(existing.UpdatedAt) {
			continue
		}
		if exists {
			rv.Route = existing.Route
			rv.CategoryName = existing.CategoryName
			rv.CreatedAt = existing.CreatedAt
			rv.DeletedAt = existing.DeletedAt
		}
		s.storage.Set(id, rv)
		merged++
	}
	return merged
}

// ProcessMovements advances every moving vehicle along its route by
// speed times elapsed time, returning one location event per vehicle
// that moved.
func (s *FleetService) ProcessMovements() []model.LocationUpdate {
	now := time.Now()
	var events []model.LocationUpdate

	s.storage.ForEach(func(id string, v *model.FleetVehicle) bool {
		if v.State != model.VehicleStateMoving {
			return true
		}
		if moved := s.advanceVehicle(v, now); moved {
			s.storage.Set(v.ID, v)
			events = append(events, v.ToLocationUpdate())
		}
		return true
	})

	if len(events) > 0 {
		log.Debugf("Processed movements for %d vehicles", len(events))
	}
	return events
}

// advanceVehicle walks v along its decoded route points, wrapping at the
// route end. Vehicles without a usable route stay put.
func (s *FleetService) advanceVehicle(v *model.FleetVehicle, now time.Time) bool {
	if v.RoutePoints == nil {
		v.RoutePoints = ParseRoute(v.Route)
	}
	if len(v.RoutePoints) < 2 {
		return false
	}

	elapsed := now.Sub(v.UpdatedAt).Seconds()
	if v.UpdatedAt.IsZero() || elapsed < 0 {
		elapsed = 0
	}
	// A vehicle resumed after a long pause should not teleport across
	// half its route.
	if elapsed > 60 {
		elapsed = 60
	}

	remaining := v.SpeedMS * elapsed
	if remaining <= 0 {
		v.UpdatedAt = now
		return false
	}

	startLat, startLng := v.Latitude, v.Longitude
	lat, lng := v.Latitude, v.Longitude
	hops := 0
	for remaining > 0 {
		if v.NextPointIndex < 0 || v.NextPointIndex >= len(v.RoutePoints) {
			v.NextPointIndex = 0
		}
		next := v.RoutePoints[v.NextPointIndex]
		d := util.HaversineDistance(lat, lng, next[0], next[1])
		if d == 0 {
			// Standing on the waypoint already; move on to the next one,
			// bailing out if every point on the route is identical.
			v.NextPointIndex = (v.NextPointIndex + 1) % len(v.RoutePoints)
			hops++
			if hops > len(v.RoutePoints) {
				break
			}
			continue
		}
		hops = 0
		if d <= remaining {
			lat, lng = next[0], next[1]
			remaining -= d
			v.NextPointIndex = (v.NextPointIndex + 1) % len(v.RoutePoints)
		} else {
			moved := util.MoveToward(lat, lng, next[0], next[1], remaining)
			lat, lng = moved[0], moved[1]
			remaining = 0
		}
	}

	v.Latitude, v.Longitude = lat, lng
	v.UpdatedAt = now
	return lat != startLat || lng != startLng
}

// Snapshot returns the current location of every vehicle.
func (s *FleetService) Snapshot() []model.LocationUpdate {
	vehicles := s.storage.GetAllValues()
	out := make([]model.LocationUpdate, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ToLocationUpdate())
	}
	return out
}

// Count returns the fleet size.
func (s *FleetService) Count() int {
	return s.storage.Count()
}

// StartPersistenceWorkers starts the Redis and PostgreSQL backup loops
// for whichever stores are configured.
func (s *FleetService) StartPersistenceWorkers(redisInterval, pgInterval time.Duration) {
	if redis_client.GetClient() != nil {
		redisTimer := time.NewTicker(redisInterval)
		go func() {
			for range redisTimer.C {
				if err := s.SaveDirtyVehiclesToRedis(); err != nil {
					log.Errorf("Error saving to Redis: %v", err)
				}
			}
		}()
	}

	if pg.GetDB() != nil {
		pgTimer := time.NewTicker(pgInterval)
		go func() {
			for range pgTimer.C {
				if err := s.SaveAllVehiclesToPG(); err != nil {
					log.Errorf("Error saving to PostgreSQL: %v", err)
				}
			}
		}()
	}
}

// SaveDirtyVehiclesToRedis saves modified vehicles to Redis
func (s *FleetService) SaveDirtyVehiclesToRedis() error {
	dirty := s.storage.GetDirty()
	if len(dirty) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	ctx := context.Background()
	pipe := client.Pipeline()

	keys := make([]string, 0, len(dirty))
	for id, v := range dirty {
		vehicleJSON, err := json.Marshal(v.ToLightVersion())
		if err != nil {
			return err
		}
		pipe.Set(ctx, fmt.Sprintf("%s:%s", vehicleRedisKey, id), vehicleJSON, 0)
		keys = append(keys, id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)

	log.Debugf("Saved %d vehicles to Redis", len(dirty))
	return nil
}

// SaveAllVehiclesToPG saves the whole fleet to PostgreSQL in batches
func (s *FleetService) SaveAllVehiclesToPG() error {
	all := s.storage.GetAllValues()
	if len(all) == 0 {
		return nil
	}

	db := pg.GetDB()
	batchSize := 500

	for i := 0; i < len(all); i += batchSize {
		end := i + batchSize
		if end > len(all) {
			end = len(all)
		}
		batch := all[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, v := range batch {
				if result := tx.Save(v); result.Error != nil {
					return result.Error
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	log.Debugf("Saved %d vehicles to PostgreSQL", len(all))
	return nil
}
