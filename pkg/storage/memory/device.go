package memory

import (
	"sync"
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

type deviceStore struct {
	store  map[string]model.Device
	nextID int32
	sync.RWMutex
}

func newDeviceStore() *deviceStore {
	return &deviceStore{
		store:  make(map[string]model.Device),
		nextID: 1,
	}
}

func (s *deviceStore) Add(m *model.Device) error {
	s.Lock()
	defer s.Unlock()

	m.ID = s.getNextID()
	m.IsConnected = true
	m.LastPing = time.Now().Round(time.Second).UTC()

	s.store[m.DeviceID] = *m

	return nil
}

func (s *deviceStore) FindByDeviceID(deviceID string) (*model.Device, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[deviceID]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *deviceStore) FetchBySessionID(sessionID string) ([]model.Device, error) {
	s.RLock()
	defer s.RUnlock()

	models := make([]model.Device, 0)
	for _, m := range s.store {
		if m.SessionID == sessionID {
			models = append(models, m)
		}
	}

	return models, nil
}

func (s *deviceStore) SetConnected(deviceID string, connected bool) (bool, error) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[deviceID]
	if !ok {
		return false, nil
	}

	m.IsConnected = connected
	s.store[deviceID] = m

	return true, nil
}

func (s *deviceStore) TouchPing(deviceID string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[deviceID]
	if !ok {
		return false, nil
	}

	m.LastPing = time.Now().Round(time.Second).UTC()
	s.store[deviceID] = m

	return true, nil
}

func (s *deviceStore) getNextID() int32 {
	id := s.nextID
	s.nextID++
	return id
}
