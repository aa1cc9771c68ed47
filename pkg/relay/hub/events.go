package hub

import (
	"encoding/json"
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
)

const (
	deviceStatusConnected    = "CONNECTED"
	deviceStatusDisconnected = "DISCONNECTED"

	subjectDeviceStatus = "dronecam.relay.v1.events.devicestatus"
	subjectTelemetry    = "dronecam.relay.v1.events.telemetry"
)

type deviceStatusEvent struct {
	SessionID string    `json:"session_id"`
	DeviceID  string    `json:"device_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type telemetryEvent struct {
	SessionID string                 `json:"session_id"`
	DeviceID  string                 `json:"device_id"`
	Timestamp time.Time              `json:"timestamp"`
	Sample    *model.TelemetrySample `json:"sample"`
}

// publishDeviceStatus announces connectivity changes on the event bus
// for external consumers. Without a broker connection this is a no-op,
// message routing never depends on it.
func (ctrl *Controller) publishDeviceStatus(sessionID, deviceID, status string) error {
	if ctrl.nc == nil {
		return nil
	}

	evt := deviceStatusEvent{
		SessionID: sessionID,
		DeviceID:  deviceID,
		Status:    status,
		Timestamp: time.Now().Round(time.Second).UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return ctrl.nc.Publish(subjectDeviceStatus, data)
}

func (ctrl *Controller) publishTelemetry(sessionID string, sample *model.TelemetrySample) error {
	if ctrl.nc == nil {
		return nil
	}

	evt := telemetryEvent{
		SessionID: sessionID,
		DeviceID:  sample.DeviceID,
		Timestamp: time.Now().Round(time.Second).UTC(),
		Sample:    sample,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return ctrl.nc.Publish(subjectTelemetry, data)
}
