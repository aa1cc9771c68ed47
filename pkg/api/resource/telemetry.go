package resource

import (
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
)

type TelemetryResource struct {
	ID             int32     `json:"id"`
	DeviceID       string    `json:"deviceId"`
	Timestamp      time.Time `json:"timestamp"`
	Battery        *float64  `json:"battery"`
	Altitude       *float64  `json:"altitude"`
	Speed          *float64  `json:"speed"`
	Pitch          *float64  `json:"pitch"`
	Roll           *float64  `json:"roll"`
	Yaw            *float64  `json:"yaw"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	SignalStrength *float64  `json:"signalStrength"`
}

func NewTelemetry(m *model.TelemetrySample) (out *TelemetryResource) {
	out = &TelemetryResource{
		ID:             m.ID,
		DeviceID:       m.DeviceID,
		Timestamp:      m.Timestamp,
		Battery:        m.Battery,
		Altitude:       m.Altitude,
		Speed:          m.Speed,
		Pitch:          m.Pitch,
		Roll:           m.Roll,
		Yaw:            m.Yaw,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		SignalStrength: m.SignalStrength,
	}

	return // out
}
