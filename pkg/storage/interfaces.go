package storage

import "github.com/ojassapate/drone-cam/pkg/model"

// Interface is implemented by the storage
type Interface interface {
	Sessions() SessionStore
	Devices() DeviceStore
	Telemetry() TelemetryStore
}

// SessionStore is responsible for managing the Session model. Create
// generates a session ID when the given model carries none.
type SessionStore interface {
	Create(m *model.Session) error
	FindBySessionID(sessionID string) (*model.Session, error)
	Deactivate(sessionID string) (bool, error)
}

// DeviceStore is responsible for managing the Device model. The boolean
// mutators report false instead of an error when the device is unknown,
// callers treat that as a non-fatal no-op.
type DeviceStore interface {
	Add(m *model.Device) error
	FindByDeviceID(deviceID string) (*model.Device, error)
	FetchBySessionID(sessionID string) ([]model.Device, error)
	SetConnected(deviceID string, connected bool) (bool, error)
	TouchPing(deviceID string) (bool, error)
}

// TelemetryStore is responsible for managing the TelemetrySample model.
// Append assigns the sample ID and the ingestion timestamp, client
// supplied timestamps are never stored.
type TelemetryStore interface {
	Append(m *model.TelemetrySample) error
	LatestByDeviceID(deviceID string) (*model.TelemetrySample, error)
}
