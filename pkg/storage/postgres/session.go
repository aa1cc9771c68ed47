package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

func newSessionStore(db *sqlx.DB) *sessionStore {
	return &sessionStore{
		db: db,
	}
}

type sessionStore struct {
	db *sqlx.DB
}

type sqlDataSession struct {
	ID        int32     `db:"id"`
	SessionID string    `db:"session_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *sqlDataSession) Model() (*model.Session, error) {
	m := &model.Session{
		ID:        d.ID,
		SessionID: d.SessionID,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}

	return m, nil
}

func (s *sessionStore) Create(m *model.Session) error {
	if m.SessionID == "" {
		m.SessionID = uuid.NewString()
	}

	m.IsActive = true
	m.CreatedAt = time.Now().Round(time.Second).UTC()

	query := `INSERT INTO sessions (session_id, is_active, created_at)
		VALUES ($1, $2, $3) RETURNING id`
	if err := s.db.Get(&m.ID, query, m.SessionID, m.IsActive, m.CreatedAt); err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return nil
}

func (s *sessionStore) FindBySessionID(sessionID string) (*model.Session, error) {
	d := sqlDataSession{}
	query := "SELECT * FROM sessions WHERE session_id=$1"
	if err := s.db.Get(&d, query, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find session")
	}

	return d.Model()
}

func (s *sessionStore) Deactivate(sessionID string) (bool, error) {
	query := "UPDATE sessions SET is_active=FALSE WHERE session_id=$1"
	res, err := s.db.Exec(query, sessionID)
	if err != nil {
		return false, errors.Wrap(err, "failed to deactivate session")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to deactivate session")
	}

	return n > 0, nil
}
