package postgres

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

func newTelemetryStore(db *sqlx.DB) *telemetryStore {
	return &telemetryStore{
		db: db,
	}
}

type telemetryStore struct {
	db *sqlx.DB
}

type sqlDataTelemetry struct {
	ID             int32     `db:"id"`
	DeviceID       string    `db:"device_id"`
	Timestamp      time.Time `db:"timestamp"`
	Battery        *float64  `db:"battery"`
	Altitude       *float64  `db:"altitude"`
	Speed          *float64  `db:"speed"`
	Pitch          *float64  `db:"pitch"`
	Roll           *float64  `db:"roll"`
	Yaw            *float64  `db:"yaw"`
	Latitude       *float64  `db:"latitude"`
	Longitude      *float64  `db:"longitude"`
	SignalStrength *float64  `db:"signal_strength"`
}

func (d *sqlDataTelemetry) Model() (*model.TelemetrySample, error) {
	m := &model.TelemetrySample{
		ID:             d.ID,
		DeviceID:       d.DeviceID,
		Timestamp:      d.Timestamp,
		Battery:        d.Battery,
		Altitude:       d.Altitude,
		Speed:          d.Speed,
		Pitch:          d.Pitch,
		Roll:           d.Roll,
		Yaw:            d.Yaw,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		SignalStrength: d.SignalStrength,
	}

	return m, nil
}

func (s *telemetryStore) Append(m *model.TelemetrySample) error {
	m.Timestamp = time.Now().UTC()

	query := `INSERT INTO telemetry
		(device_id, timestamp, battery, altitude, speed, pitch, roll, yaw,
		 latitude, longitude, signal_strength)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := s.db.Get(&m.ID, query, m.DeviceID, m.Timestamp, m.Battery,
		m.Altitude, m.Speed, m.Pitch, m.Roll, m.Yaw, m.Latitude, m.Longitude,
		m.SignalStrength); err != nil {
		return errors.Wrap(err, "failed to append telemetry sample")
	}

	return nil
}

func (s *telemetryStore) LatestByDeviceID(deviceID string) (*model.TelemetrySample, error) {
	d := sqlDataTelemetry{}
	query := `SELECT * FROM telemetry WHERE device_id=$1
		ORDER BY timestamp DESC LIMIT 1`
	if err := s.db.Get(&d, query, deviceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find latest telemetry sample")
	}

	return d.Model()
}
