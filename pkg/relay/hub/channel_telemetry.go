package hub

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/relay/proto"
	"github.com/ojassapate/drone-cam/pkg/relay/websocket"
)

// handleTelemetry ingests one sample and fans the stored version out to
// the whole session, the sender included. The store assigns the
// timestamp, client clocks are not trusted.
func (ch *Channel) handleTelemetry(msg *proto.Message) {
	deviceID, sessionID := ch.bound()

	if deviceID == "" || len(msg.Payload) == 0 {
		ch.errorReply("Invalid telemetry data")
		return
	}

	payload, err := proto.UnmarshalTelemetryPayload(msg.Payload)
	if err != nil {
		if ve, ok := err.(*proto.ValidationError); ok {
			ch.errorReply(ve.Error())
		} else {
			ch.errorReply("Error processing telemetry data")
		}
		return
	}

	sample := &model.TelemetrySample{
		DeviceID:       deviceID,
		Battery:        payload.Battery,
		Altitude:       payload.Altitude,
		Speed:          payload.Speed,
		Pitch:          payload.Pitch,
		Roll:           payload.Roll,
		Yaw:            payload.Yaw,
		Latitude:       payload.Latitude,
		Longitude:      payload.Longitude,
		SignalStrength: payload.SignalStrength,
	}
	if err := ch.ctrl.store.Telemetry().Append(sample); err != nil {
		log.Errorf("relay channel failed to store telemetry sample: %v", err)
		ch.errorReply("Error processing telemetry data")
		return
	}
	telemetrySamples.Inc()

	if ch.ctrl.sink != nil {
		if err := ch.ctrl.sink.Write(sample); err != nil {
			log.Errorf("relay channel failed to write telemetry sample to sink: %v", err)
		}
	}

	if err := ch.ctrl.publishTelemetry(sessionID, sample); err != nil {
		log.Errorf("relay controller could not publish telemetry event: %v", err)
	}

	stored, err := json.Marshal(storedSamplePayload(sample))
	if err != nil {
		log.Errorf("relay channel could not marshal telemetry sample: %v", err)
		return
	}

	out := &proto.Message{
		Type:     proto.MessageTypeTelemetry,
		DeviceID: deviceID,
		Payload:  stored,
	}
	if data, err := out.Marshal(); err == nil {
		ch.ctrl.broadcastToSession(sessionID, data, "")
	}
}

// handlePing answers a client-sent ping. The server-initiated heartbeat
// lives in Channel.heartbeat, this is only the courtesy reply.
func (ch *Channel) handlePing() {
	data, err := proto.MarshalNewPongMessage()
	if err != nil {
		return
	}
	ch.push(websocket.FlagContinue, data)
}

// handlePong records heartbeat answers in the device registry.
func (ch *Channel) handlePong() {
	deviceID, _ := ch.bound()
	if deviceID == "" {
		return
	}

	if _, err := ch.ctrl.store.Devices().TouchPing(deviceID); err != nil {
		log.Errorf("relay channel failed to update device ping: %v", err)
	}
}

func storedSamplePayload(m *model.TelemetrySample) *proto.TelemetrySamplePayload {
	return &proto.TelemetrySamplePayload{
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
}
