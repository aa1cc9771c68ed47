package resource

import (
	"sort"
	"time"

	"github.com/ojassapate/drone-cam/pkg/model"
)

type DeviceResource struct {
	DeviceID    string           `json:"deviceId"`
	SessionID   string           `json:"sessionId"`
	DeviceType  model.DeviceType `json:"deviceType"`
	DeviceName  string           `json:"deviceName"`
	IsConnected bool             `json:"isConnected"`
	LastPing    time.Time        `json:"lastPing"`
}

func NewDevice(m *model.Device) (out *DeviceResource) {
	out = &DeviceResource{
		DeviceID:    m.DeviceID,
		SessionID:   m.SessionID,
		DeviceType:  m.DeviceType,
		DeviceName:  m.DeviceName,
		IsConnected: m.IsConnected,
		LastPing:    m.LastPing,
	}

	return // out
}

func NewDeviceList(models []model.Device) (out []*DeviceResource) {
	out = make([]*DeviceResource, 0, len(models))

	for i := range models {
		out = append(out, NewDevice(&models[i]))
	}

	// Default sort by device id
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeviceID < out[j].DeviceID
	})

	return // out
}
