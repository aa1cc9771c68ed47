package proto

import (
	"strings"
	"testing"
)

func TestUnmarshalMessage(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		msgType MessageType
	}{
		{"join", `{"type":"join_session","sessionId":"s1","deviceId":"d1","deviceType":"primary","deviceName":"Controller"}`, MessageTypeJoinSession},
		{"offer", `{"type":"offer","deviceId":"d2","payload":{"sdp":"x"}}`, MessageTypeOffer},
		{"telemetry", `{"type":"telemetry","payload":{"battery":87.5}}`, MessageTypeTelemetry},
		{"pong", `{"type":"pong"}`, MessageTypePong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := UnmarshalMessage([]byte(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg.Type != tt.msgType {
				t.Errorf("got type %q, want %q", msg.Type, tt.msgType)
			}
		})
	}
}

func TestUnmarshalMessageMalformed(t *testing.T) {
	_, err := UnmarshalMessage([]byte(`{"type":`))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if IsValidationError(err) {
		t.Error("parse failure must not be a validation error")
	}
}

func TestUnmarshalMessageValidation(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"missing type", `{"sessionId":"s1"}`, "type"},
		{"unknown type", `{"type":"self_destruct"}`, "type"},
		{"outbound-only type", `{"type":"session_devices"}`, "type"},
		{"bad device type", `{"type":"join_session","deviceType":"toaster"}`, "deviceType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalMessage([]byte(tt.data))
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tt.field {
				t.Errorf("got field %q, want %q", ve.Field, tt.field)
			}
			if !strings.Contains(ve.Error(), tt.field) {
				t.Errorf("description %q does not name the field", ve.Error())
			}
		})
	}
}

func TestUnmarshalTelemetryPayload(t *testing.T) {
	p, err := UnmarshalTelemetryPayload([]byte(`{"battery":42,"altitude":120.5,"deviceId":"ignored","timestamp":"ignored"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Battery == nil || *p.Battery != 42 {
		t.Errorf("battery not parsed: %v", p.Battery)
	}
	if p.Altitude == nil || *p.Altitude != 120.5 {
		t.Errorf("altitude not parsed: %v", p.Altitude)
	}
	if p.Speed != nil {
		t.Error("absent field must stay nil")
	}
}

func TestUnmarshalTelemetryPayloadRejectsNonNumeric(t *testing.T) {
	_, err := UnmarshalTelemetryPayload([]byte(`{"battery":"full"}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
