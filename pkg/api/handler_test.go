package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
	"github.com/ojassapate/drone-cam/pkg/storage/memory"
)

func newTestServer(store storage.Interface) *echo.Echo {
	e := echo.New()
	NewHandler(store).RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateSession(t *testing.T) {
	store := memory.NewStore()
	e := newTestServer(store)

	rec := doRequest(e, http.MethodPost, "/api/sessions")
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201", rec.Code)
	}

	var body struct {
		SessionID string `json:"sessionId"`
		IsActive  bool   `json:"isActive"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.SessionID == "" {
		t.Error("response misses the generated session id")
	}
	if !body.IsActive {
		t.Error("new session is not active")
	}

	if _, err := store.Sessions().FindBySessionID(body.SessionID); err != nil {
		t.Errorf("session not persisted: %v", err)
	}
}

func TestGetSession(t *testing.T) {
	store := memory.NewStore()
	e := newTestServer(store)

	sess := model.Session{SessionID: "sess-1"}
	if err := store.Sessions().Create(&sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	devices := []model.Device{
		{SessionID: "sess-1", DeviceID: "d2", DeviceType: model.DeviceTypeCamera, DeviceName: "Phone"},
		{SessionID: "sess-1", DeviceID: "d1", DeviceType: model.DeviceTypePrimary, DeviceName: "Controller"},
	}
	for i := range devices {
		if err := store.Devices().Add(&devices[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	rec := doRequest(e, http.MethodGet, "/api/sessions/sess-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var body struct {
		SessionID string `json:"sessionId"`
		IsActive  bool   `json:"isActive"`
		Devices   []struct {
			DeviceID string `json:"deviceId"`
		} `json:"devices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.SessionID != "sess-1" || !body.IsActive {
		t.Errorf("unexpected session body: %+v", body)
	}
	if len(body.Devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(body.Devices))
	}
	// Device list is sorted by device id.
	if body.Devices[0].DeviceID != "d1" || body.Devices[1].DeviceID != "d2" {
		t.Errorf("device list not sorted: %+v", body.Devices)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	e := newTestServer(memory.NewStore())

	rec := doRequest(e, http.MethodGet, "/api/sessions/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}

	var body messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Message != "Session not found" {
		t.Errorf("got message %q, want %q", body.Message, "Session not found")
	}
}

func TestDeactivateSession(t *testing.T) {
	store := memory.NewStore()
	e := newTestServer(store)

	sess := model.Session{SessionID: "sess-1"}
	if err := store.Sessions().Create(&sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := doRequest(e, http.MethodDelete, "/api/sessions/sess-1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204", rec.Code)
	}

	found, err := store.Sessions().FindBySessionID("sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.IsActive {
		t.Error("session still active after delete")
	}

	rec = doRequest(e, http.MethodDelete, "/api/sessions/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestGetLatestTelemetry(t *testing.T) {
	store := memory.NewStore()
	e := newTestServer(store)

	battery := 42.0
	sample := model.TelemetrySample{DeviceID: "d1", Battery: &battery}
	if err := store.Telemetry().Append(&sample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := doRequest(e, http.MethodGet, "/api/devices/d1/telemetry")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var body struct {
		DeviceID string   `json:"deviceId"`
		Battery  *float64 `json:"battery"`
		Altitude *float64 `json:"altitude"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.DeviceID != "d1" {
		t.Errorf("got device %q, want d1", body.DeviceID)
	}
	if body.Battery == nil || *body.Battery != 42 {
		t.Errorf("unexpected battery value: %+v", body.Battery)
	}
	// Absent measurements are serialized as explicit nulls.
	if body.Altitude != nil {
		t.Errorf("unexpected altitude value: %+v", body.Altitude)
	}
}

func TestGetLatestTelemetryNotFound(t *testing.T) {
	e := newTestServer(memory.NewStore())

	rec := doRequest(e, http.MethodGet, "/api/devices/nope/telemetry")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}

	var body messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Message != "No telemetry data found for device" {
		t.Errorf("got message %q, want %q", body.Message, "No telemetry data found for device")
	}
}
