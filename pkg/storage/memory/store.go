package memory

import "github.com/ojassapate/drone-cam/pkg/storage"

// Store contains all memory-based sub-stores for managing the persistent models
type store struct {
	sessions  *sessionStore
	devices   *deviceStore
	telemetry *telemetryStore
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		sessions:  newSessionStore(),
		devices:   newDeviceStore(),
		telemetry: newTelemetryStore(),
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
