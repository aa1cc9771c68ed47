package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

type sessionStore struct {
	store  map[string]model.Session
	nextID int32
	sync.RWMutex
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		store:  make(map[string]model.Session),
		nextID: 1,
	}
}

func (s *sessionStore) Create(m *model.Session) error {
	s.Lock()
	defer s.Unlock()

	if m.SessionID == "" {
		m.SessionID = uuid.NewString()
	}

	m.ID = s.getNextID()
	m.IsActive = true
	m.CreatedAt = time.Now().Round(time.Second).UTC()

	s.store[m.SessionID] = *m

	return nil
}

func (s *sessionStore) FindBySessionID(sessionID string) (*model.Session, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[sessionID]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *sessionStore) Deactivate(sessionID string) (bool, error) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[sessionID]
	if !ok {
		return false, nil
	}

	m.IsActive = false
	s.store[sessionID] = m

	return true, nil
}

func (s *sessionStore) getNextID() int32 {
	id := s.nextID
	s.nextID++
	return id
}
