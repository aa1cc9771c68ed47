package model

import "time"

// TelemetrySample is a model of the persistency layer. All measurement
// fields are optional, a nil pointer means the device did not report the
// value.
type TelemetrySample struct {
	ID             int32
	DeviceID       string
	Timestamp      time.Time
	Battery        *float64
	Altitude       *float64
	Speed          *float64
	Pitch          *float64
	Roll           *float64
	Yaw            *float64
	Latitude       *float64
	Longitude      *float64
	SignalStrength *float64
}
