package model

import "time"

// DeviceType enumerates the roles a device can declare when joining a
// session.
type DeviceType string

const (
	DeviceTypePrimary DeviceType = "primary"
	DeviceTypeCamera  DeviceType = "camera"
	DeviceTypeDrone   DeviceType = "drone"
)

// IsValid reports whether the device type is one of the known roles.
func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypePrimary, DeviceTypeCamera, DeviceTypeDrone:
		return true
	}
	return false
}

// Device is a model of the persistency layer
type Device struct {
	ID          int32
	SessionID   string
	DeviceID    string
	DeviceType  DeviceType
	DeviceName  string
	IsConnected bool
	LastPing    time.Time
}
