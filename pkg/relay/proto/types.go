package proto

import (
	"encoding/json"
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
)

type MessageType string

const (
	MessageTypeJoinSession  MessageType = "join_session"
	MessageTypeLeaveSession MessageType = "leave_session"
	MessageTypeOffer        MessageType = "offer"
	MessageTypeAnswer       MessageType = "answer"
	MessageTypeICECandidate MessageType = "ice_candidate"
	MessageTypeTelemetry    MessageType = "telemetry"
	MessageTypeDroneCommand MessageType = "drone_command"
	MessageTypeSwitchCamera MessageType = "switch_camera"
	MessageTypeError        MessageType = "error"
	MessageTypePing         MessageType = "ping"
	MessageTypePong         MessageType = "pong"

	// MessageTypeSessionDevices is sent to a freshly joined connection
	// only, it is never accepted on the inbound side.
	MessageTypeSessionDevices MessageType = "session_devices"
)

// Message is a single frame of the relay wire protocol. Every field
// except Type is optional, the router decides per message type which
// ones are required. Payload stays opaque unless the type demands a
// shape (telemetry).
type Message struct {
	Type       MessageType      `json:"type"`
	SessionID  string           `json:"sessionId,omitempty"`
	DeviceID   string           `json:"deviceId,omitempty"`
	DeviceType model.DeviceType `json:"deviceType,omitempty"`
	DeviceName string           `json:"deviceName,omitempty"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
}

// Marshal encodes the message for transmission as a single text frame.
func (m *Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// ErrorPayload is the payload shape of every error frame sent by the
// relay.
type ErrorPayload struct {
	Message string `json:"message"`
}

// TelemetryPayload carries the optional measurements of a telemetry
// frame. Unknown payload fields are ignored, client supplied ids and
// timestamps in particular.
type TelemetryPayload struct {
	Battery        *float64 `json:"battery,omitempty"`
	Altitude       *float64 `json:"altitude,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	Pitch          *float64 `json:"pitch,omitempty"`
	Roll           *float64 `json:"roll,omitempty"`
	Yaw            *float64 `json:"yaw,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	SignalStrength *float64 `json:"signalStrength,omitempty"`
}

// TelemetrySamplePayload is the stored sample as it is broadcast to the
// session after ingestion.
type TelemetrySamplePayload struct {
	ID             int32     `json:"id"`
	DeviceID       string    `json:"deviceId"`
	Timestamp      time.Time `json:"timestamp"`
	Battery        *float64  `json:"battery,omitempty"`
	Altitude       *float64  `json:"altitude,omitempty"`
	Speed          *float64  `json:"speed,omitempty"`
	Pitch          *float64  `json:"pitch,omitempty"`
	Roll           *float64  `json:"roll,omitempty"`
	Yaw            *float64  `json:"yaw,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	SignalStrength *float64  `json:"signalStrength,omitempty"`
}

// SessionDevice is one roster entry of a session_devices frame.
type SessionDevice struct {
	DeviceID    string           `json:"deviceId"`
	DeviceType  model.DeviceType `json:"deviceType"`
	DeviceName  string           `json:"deviceName"`
	IsConnected bool             `json:"isConnected"`
	LastPing    time.Time        `json:"lastPing"`
}

// SessionDevicesPayload is the payload shape of a session_devices frame.
type SessionDevicesPayload struct {
	Devices []SessionDevice `json:"devices"`
}

// MarshalNewErrorMessage builds and encodes an error frame for the
// given human-readable description.
func MarshalNewErrorMessage(description string) ([]byte, error) {
	payload, err := json.Marshal(ErrorPayload{Message: description})
	if err != nil {
		return nil, err
	}

	msg := &Message{
		Type:    MessageTypeError,
		Payload: payload,
	}
	return msg.Marshal()
}

// MarshalNewPingMessage encodes the unsolicited heartbeat frame.
func MarshalNewPingMessage() ([]byte, error) {
	msg := &Message{Type: MessageTypePing}
	return msg.Marshal()
}

// MarshalNewPongMessage encodes the reply to a client-sent ping.
func MarshalNewPongMessage() ([]byte, error) {
	msg := &Message{Type: MessageTypePong}
	return msg.Marshal()
}
