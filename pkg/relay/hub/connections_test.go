package hub

import (
	"testing"

	"github.com/ojassapate/drone-cam/pkg/model"
)

func TestTablePutGet(t *testing.T) {
	table := NewTable()
	ch := &Channel{}

	table.Put("d1", "sess-1", model.DeviceTypeDrone, "Quad", ch)

	conn, ok := table.Get("d1")
	if !ok {
		t.Fatal("expected connection for d1")
	}
	if conn.SessionID != "sess-1" || conn.DeviceType != model.DeviceTypeDrone || conn.DeviceName != "Quad" {
		t.Errorf("unexpected connection: %+v", conn)
	}
	if conn.channel != ch {
		t.Error("connection does not point at the given channel")
	}

	if _, ok := table.Get("nope"); ok {
		t.Error("unexpected connection for unknown deviceId")
	}
}

func TestTablePutReplacesPriorEntry(t *testing.T) {
	table := NewTable()
	old := &Channel{}
	fresh := &Channel{}

	table.Put("d1", "sess-1", model.DeviceTypeDrone, "Quad", old)
	table.Put("d1", "sess-2", model.DeviceTypeDrone, "Quad", fresh)

	conn, ok := table.Get("d1")
	if !ok {
		t.Fatal("expected connection for d1")
	}
	if conn.channel != fresh || conn.SessionID != "sess-2" {
		t.Error("second join did not replace the prior entry")
	}
	if table.count() != 1 {
		t.Errorf("got %d entries, want 1", table.count())
	}
}

func TestTableRemoveGuardedByChannel(t *testing.T) {
	table := NewTable()
	old := &Channel{}
	fresh := &Channel{}

	table.Put("d1", "sess-1", model.DeviceTypeDrone, "Quad", old)
	table.Put("d1", "sess-1", model.DeviceTypeDrone, "Quad", fresh)

	// The orphaned transport closing late must not evict the live entry.
	if table.Remove("d1", old) {
		t.Error("remove with a stale channel must report false")
	}
	if _, ok := table.Get("d1"); !ok {
		t.Fatal("live entry was evicted by a stale remove")
	}

	if !table.Remove("d1", fresh) {
		t.Error("remove with the owning channel must report true")
	}
	if _, ok := table.Get("d1"); ok {
		t.Error("entry still present after remove")
	}

	if table.Remove("d1", fresh) {
		t.Error("remove of an absent entry must report false")
	}
}

func TestTableListBySession(t *testing.T) {
	table := NewTable()

	table.Put("d1", "sess-1", model.DeviceTypePrimary, "Controller", &Channel{})
	table.Put("d2", "sess-1", model.DeviceTypeDrone, "Quad", &Channel{})
	table.Put("d3", "sess-2", model.DeviceTypeDrone, "Other", &Channel{})

	if got := len(table.ListBySession("sess-1")); got != 2 {
		t.Errorf("got %d connections in sess-1, want 2", got)
	}
	if got := len(table.ListBySession("empty")); got != 0 {
		t.Errorf("got %d connections in empty session, want 0", got)
	}

	drones := table.ListBySessionAndType("sess-1", model.DeviceTypeDrone)
	if len(drones) != 1 || drones[0].DeviceID != "d2" {
		t.Errorf("unexpected drone list: %+v", drones)
	}
}
