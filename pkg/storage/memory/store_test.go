package memory

import (
	"testing"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

func TestSessionStoreCreateGeneratesID(t *testing.T) {
	s := NewStore()

	sess := model.Session{}
	if err := s.Sessions().Create(&sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if !sess.IsActive {
		t.Error("new session must be active")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("created timestamp not set")
	}

	found, err := s.Sessions().FindBySessionID(sess.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.SessionID != sess.SessionID {
		t.Errorf("got session %q, want %q", found.SessionID, sess.SessionID)
	}
}

func TestSessionStoreKeepsGivenID(t *testing.T) {
	s := NewStore()

	sess := model.Session{SessionID: "sess-1"}
	if err := s.Sessions().Create(&sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SessionID != "sess-1" {
		t.Errorf("session id was rewritten to %q", sess.SessionID)
	}
}

func TestSessionStoreFindMissing(t *testing.T) {
	s := NewStore()

	if _, err := s.Sessions().FindBySessionID("nope"); err != storage.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSessionStoreDeactivate(t *testing.T) {
	s := NewStore()

	sess := model.Session{SessionID: "sess-1"}
	if err := s.Sessions().Create(&sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := s.Sessions().Deactivate("sess-1")
	if err != nil || !ok {
		t.Fatalf("deactivate failed: ok=%v err=%v", ok, err)
	}

	found, _ := s.Sessions().FindBySessionID("sess-1")
	if found.IsActive {
		t.Error("session still active after deactivate")
	}

	ok, err = s.Sessions().Deactivate("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("deactivate of unknown session must report false")
	}
}

func TestDeviceStoreAddAndFetchBySession(t *testing.T) {
	s := NewStore()

	devices := []model.Device{
		{SessionID: "sess-1", DeviceID: "d1", DeviceType: model.DeviceTypePrimary, DeviceName: "Controller"},
		{SessionID: "sess-1", DeviceID: "d2", DeviceType: model.DeviceTypeCamera, DeviceName: "Phone"},
		{SessionID: "sess-2", DeviceID: "d3", DeviceType: model.DeviceTypeDrone, DeviceName: "Quad"},
	}
	for i := range devices {
		if err := s.Devices().Add(&devices[i]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !devices[i].IsConnected {
			t.Error("new device must be connected")
		}
	}

	found, err := s.Devices().FetchBySessionID("sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("got %d devices, want 2", len(found))
	}
}

func TestDeviceStoreMutatorsReportFalseOnMissing(t *testing.T) {
	s := NewStore()

	ok, err := s.Devices().SetConnected("nope", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("SetConnected on unknown device must report false")
	}

	ok, err = s.Devices().TouchPing("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("TouchPing on unknown device must report false")
	}
}

func TestDeviceStoreSetConnected(t *testing.T) {
	s := NewStore()

	dev := model.Device{SessionID: "sess-1", DeviceID: "d1", DeviceType: model.DeviceTypeDrone, DeviceName: "Quad"}
	if err := s.Devices().Add(&dev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := s.Devices().SetConnected("d1", false)
	if err != nil || !ok {
		t.Fatalf("SetConnected failed: ok=%v err=%v", ok, err)
	}

	found, err := s.Devices().FindByDeviceID("d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.IsConnected {
		t.Error("device still connected after SetConnected(false)")
	}
}

func TestTelemetryStoreAppendAssignsIDAndTimestamp(t *testing.T) {
	s := NewStore()

	battery := 55.0
	sample := model.TelemetrySample{DeviceID: "d1", Battery: &battery}
	if err := s.Telemetry().Append(&sample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.ID == 0 {
		t.Error("sample id not assigned")
	}
	if sample.Timestamp.IsZero() {
		t.Error("ingestion timestamp not assigned")
	}
}

func TestTelemetryStoreLatest(t *testing.T) {
	s := NewStore()

	for i := 0; i < 3; i++ {
		battery := float64(10 * i)
		sample := model.TelemetrySample{DeviceID: "d1", Battery: &battery}
		if err := s.Telemetry().Append(&sample); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	other := model.TelemetrySample{DeviceID: "d2"}
	if err := s.Telemetry().Append(&other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, err := s.Telemetry().LatestByDeviceID("d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.DeviceID != "d1" {
		t.Errorf("got device %q, want d1", latest.DeviceID)
	}
	if latest.Battery == nil || *latest.Battery != 20 {
		t.Errorf("latest sample is not the newest one: %+v", latest)
	}

	if _, err := s.Telemetry().LatestByDeviceID("nope"); err != storage.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
