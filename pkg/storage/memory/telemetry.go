package memory

import (
	"sync"
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

// telemetryStore is append-only, samples are never mutated or deleted.
type telemetryStore struct {
	store  []model.TelemetrySample
	nextID int32
	sync.RWMutex
}

func newTelemetryStore() *telemetryStore {
	return &telemetryStore{
		store:  make([]model.TelemetrySample, 0),
		nextID: 1,
	}
}

func (s *telemetryStore) Append(m *model.TelemetrySample) error {
	s.Lock()
	defer s.Unlock()

	m.ID = s.getNextID()
	m.Timestamp = time.Now().UTC()

	s.store = append(s.store, *m)

	return nil
}

func (s *telemetryStore) LatestByDeviceID(deviceID string) (*model.TelemetrySample, error) {
	s.RLock()
	defer s.RUnlock()

	var latest *model.TelemetrySample
	for i := range s.store {
		m := s.store[i]
		if m.DeviceID != deviceID {
			continue
		}
		if latest == nil || !m.Timestamp.Before(latest.Timestamp) {
			latest = &m
		}
	}

	if latest == nil {
		return nil, storage.ErrNotFound
	}

	return latest, nil
}

func (s *telemetryStore) getNextID() int32 {
	id := s.nextID
	s.nextID++
	return id
}
