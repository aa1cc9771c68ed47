package resource

import (
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
)

type SessionResource struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

type SessionDetailResource struct {
	SessionID string            `json:"sessionId"`
	CreatedAt time.Time         `json:"createdAt"`
	IsActive  bool              `json:"isActive"`
	Devices   []*DeviceResource `json:"devices"`
}

func NewSession(m *model.Session) (out *SessionResource) {
	out = &SessionResource{
		SessionID: m.SessionID,
		CreatedAt: m.CreatedAt,
		IsActive:  m.IsActive,
	}

	return // out
}

func NewSessionDetail(m *model.Session, devices []model.Device) (out *SessionDetailResource) {
	out = &SessionDetailResource{
		SessionID: m.SessionID,
		CreatedAt: m.CreatedAt,
		IsActive:  m.IsActive,
		Devices:   NewDeviceList(devices),
	}

	return // out
}
