package hub

import (
	"sync"

	"github.com/ojassapate/drone-cam/pkg/model"
)

// Connection is a live, reachable device. The table below is the single
// source of truth for message delivery, the device registry's
// IsConnected flag is only a best-effort mirror of it.
type Connection struct {
	DeviceID   string
	SessionID  string
	DeviceType model.DeviceType
	DeviceName string
	channel    *Channel
}

// Table maps deviceId to its live connection. A second join with the
// same deviceId replaces the prior entry (last-join-wins), the orphaned
// transport stays untouched until it closes on its own.
type Table struct {
	sync.RWMutex
	conns map[string]*Connection
}

func NewTable() *Table {
	return &Table{
		conns: make(map[string]*Connection),
	}
}

func (t *Table) Put(deviceID, sessionID string, deviceType model.DeviceType, deviceName string, ch *Channel) {
	t.Lock()
	defer t.Unlock()

	t.conns[deviceID] = &Connection{
		DeviceID:   deviceID,
		SessionID:  sessionID,
		DeviceType: deviceType,
		DeviceName: deviceName,
		channel:    ch,
	}
}

func (t *Table) Get(deviceID string) (*Connection, bool) {
	t.RLock()
	defer t.RUnlock()

	conn, ok := t.conns[deviceID]
	return conn, ok
}

// Remove evicts the entry for deviceID, but only while it still points
// at the given channel. Without this guard the delayed close of an
// orphaned transport would wipe out a newer, live entry for the same
// deviceId.
func (t *Table) Remove(deviceID string, ch *Channel) bool {
	t.Lock()
	defer t.Unlock()

	conn, ok := t.conns[deviceID]
	if !ok || conn.channel != ch {
		return false
	}

	delete(t.conns, deviceID)
	return true
}

// ListBySession returns a snapshot of the session's connections.
// Devices joining or leaving afterwards are not reflected.
func (t *Table) ListBySession(sessionID string) []*Connection {
	t.RLock()
	defer t.RUnlock()

	conns := make([]*Connection, 0)
	for _, conn := range t.conns {
		if conn.SessionID == sessionID {
			conns = append(conns, conn)
		}
	}

	return conns
}

// ListBySessionAndType returns the session's connections narrowed to
// one device class.
func (t *Table) ListBySessionAndType(sessionID string, deviceType model.DeviceType) []*Connection {
	t.RLock()
	defer t.RUnlock()

	conns := make([]*Connection, 0)
	for _, conn := range t.conns {
		if conn.SessionID == sessionID && conn.DeviceType == deviceType {
			conns = append(conns, conn)
		}
	}

	return conns
}

func (t *Table) count() int {
	t.RLock()
	defer t.RUnlock()

	return len(t.conns)
}
