package postgres

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ojassapate/drone-cam/pkg/storage"
)

// store contains all PostgreSQL based sub-stores for managing the models
type store struct {
	sessions  *sessionStore
	devices   *deviceStore
	telemetry *telemetryStore
}

// NewStore creates a new PostgreSQL based Storage interface
func NewStore(db *sqlx.DB) storage.Interface {
	return &store{
		sessions:  newSessionStore(db),
		devices:   newDeviceStore(db),
		telemetry: newTelemetryStore(db),
	}
}

// Sessions returns a sub-store for managing the Session model
func (s *store) Sessions() storage.SessionStore {
	return s.sessions
}

// Devices returns a sub-store for managing the Device model
func (s *store) Devices() storage.DeviceStore {
	return s.devices
}

// Telemetry returns a sub-store for managing the TelemetrySample model
func (s *store) Telemetry() storage.TelemetryStore {
	return s.telemetry
}
