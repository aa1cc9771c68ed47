package proto

import (
	"encoding/json"
	"fmt"
)

var inboundTypes = map[MessageType]bool{
	MessageTypeJoinSession:  true,
	MessageTypeLeaveSession: true,
	MessageTypeOffer:        true,
	MessageTypeAnswer:       true,
	MessageTypeICECandidate: true,
	MessageTypeTelemetry:    true,
	MessageTypeDroneCommand: true,
	MessageTypeSwitchCamera: true,
	MessageTypeError:        true,
	MessageTypePing:         true,
	MessageTypePong:         true,
}

// UnmarshalMessage parses a raw text frame into a validated message.
// A JSON-level failure is returned as-is (malformed input), a schema
// violation as *ValidationError.
func UnmarshalMessage(data []byte) (*Message, error) {
	msg := &Message{}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("relay: invalid message data: %s", err.Error())
	}

	if msg.Type == "" {
		return nil, NewValidationError("type", "message type is required")
	}
	if !inboundTypes[msg.Type] {
		return nil, NewValidationError("type",
			fmt.Sprintf("unknown message type '%s'", msg.Type))
	}
	if msg.DeviceType != "" && !msg.DeviceType.IsValid() {
		return nil, NewValidationError("deviceType",
			fmt.Sprintf("unknown device type '%s'", msg.DeviceType))
	}

	return msg, nil
}

// UnmarshalTelemetryPayload parses the payload of a telemetry frame. A
// schema violation (non-numeric measurement) is returned as
// *ValidationError.
func UnmarshalTelemetryPayload(raw json.RawMessage) (*TelemetryPayload, error) {
	p := &TelemetryPayload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, NewValidationError("payload", "telemetry fields must be numbers")
	}

	return p, nil
}
