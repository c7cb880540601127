package config

import "time"

// Tracking thresholds
const (
	// StaleThreshold is how long a vehicle may go without an update before
	// it is shown greyed out. Strictly greater-than: exactly 120s is fresh.
	StaleThreshold = 120 * time.Second

	// StalenessRefreshInterval defines how often marker tints are
	// re-evaluated so vehicles grey out without needing another event.
	StalenessRefreshInterval = 5 * time.Second
)

// Marker animation
const (
	// InterpolationFrames is the number of linear steps a marker takes when
	// gliding from its previous position to a new one.
	InterpolationFrames = 12

	// FrameInterval is the delay between interpolation steps.
	FrameInterval = 40 * time.Millisecond
)

// Subscription reconnect backoff bounds
const (
	ReconnectMinBackoff = 500 * time.Millisecond
	ReconnectMaxBackoff = 30 * time.Second
)

// SnapshotTimeout bounds the initial locations query.
const SnapshotTimeout = 10 * time.Second

// Simulator worker intervals
const (
	// MovementWorkerInterval defines how often the movement worker advances the fleet
	MovementWorkerInterval = 3 * time.Second

	// RedisBackupInterval defines how often to save changes to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often to save changes to PostgreSQL
	PostgresBackupInterval = 60 * time.Second
)
