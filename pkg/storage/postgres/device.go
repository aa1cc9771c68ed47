package postgres

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

func newDeviceStore(db *sqlx.DB) *deviceStore {
	return &deviceStore{
		db: db,
	}
}

type deviceStore struct {
	db *sqlx.DB
}

type sqlDataDevice struct {
	ID          int32     `db:"id"`
	SessionID   string    `db:"session_id"`
	DeviceID    string    `db:"device_id"`
	DeviceType  string    `db:"device_type"`
	DeviceName  string    `db:"device_name"`
	IsConnected bool      `db:"is_connected"`
	LastPing    time.Time `db:"last_ping"`
}

func (d *sqlDataDevice) Model() (*model.Device, error) {
	m := &model.Device{
		ID:          d.ID,
		SessionID:   d.SessionID,
		DeviceID:    d.DeviceID,
		DeviceType:  model.DeviceType(d.DeviceType),
		DeviceName:  d.DeviceName,
		IsConnected: d.IsConnected,
		LastPing:    d.LastPing,
	}

	return m, nil
}

func (s *deviceStore) Add(m *model.Device) error {
	m.IsConnected = true
	m.LastPing = time.Now().Round(time.Second).UTC()

	query := `INSERT INTO devices
		(session_id, device_id, device_type, device_name, is_connected, last_ping)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := s.db.Get(&m.ID, query, m.SessionID, m.DeviceID, string(m.DeviceType),
		m.DeviceName, m.IsConnected, m.LastPing); err != nil {
		return errors.Wrap(err, "failed to add device")
	}

	return nil
}

func (s *deviceStore) FindByDeviceID(deviceID string) (*model.Device, error) {
	d := sqlDataDevice{}
	query := "SELECT * FROM devices WHERE device_id=$1"
	if err := s.db.Get(&d, query, deviceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find device")
	}

	return d.Model()
}

func (s *deviceStore) FetchBySessionID(sessionID string) ([]model.Device, error) {
	rows := make([]sqlDataDevice, 0)
	query := "SELECT * FROM devices WHERE session_id=$1 ORDER BY id"
	if err := s.db.Select(&rows, query, sessionID); err != nil {
		return nil, errors.Wrap(err, "failed to fetch devices for session")
	}

	models := make([]model.Device, 0, len(rows))
	for _, d := range rows {
		m, err := d.Model()
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to device model")
		}
		models = append(models, *m)
	}

	return models, nil
}

func (s *deviceStore) SetConnected(deviceID string, connected bool) (bool, error) {
	query := "UPDATE devices SET is_connected=$2 WHERE device_id=$1"
	res, err := s.db.Exec(query, deviceID, connected)
	if err != nil {
		return false, errors.Wrap(err, "failed to update device status")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to update device status")
	}

	return n > 0, nil
}

func (s *deviceStore) TouchPing(deviceID string) (bool, error) {
	query := "UPDATE devices SET last_ping=$2 WHERE device_id=$1"
	res, err := s.db.Exec(query, deviceID, time.Now().Round(time.Second).UTC())
	if err != nil {
		return false, errors.Wrap(err, "failed to update device ping")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to update device ping")
	}

	return n > 0, nil
}
