package model

import "time"

// Session is a model of the persistency layer
type Session struct {
	ID        int32
	SessionID string
	IsActive  bool
	CreatedAt time.Time
}
