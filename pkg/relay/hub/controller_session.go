package hub

import (
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/relay/proto"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

// registerDevice runs the store side of a join: get-or-create the
// session, get-or-create the device record, replace the connection
// table entry. A repeat join updates the existing device record
// instead of duplicating it.
func (ctrl *Controller) registerDevice(ch *Channel, sessionID, deviceID string, deviceType model.DeviceType, deviceName string) error {
	_, err := ctrl.store.Sessions().FindBySessionID(sessionID)
	if err == storage.ErrNotFound {
		sess := model.Session{SessionID: sessionID}
		if err := ctrl.store.Sessions().Create(&sess); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	_, err = ctrl.store.Devices().FindByDeviceID(deviceID)
	if err == storage.ErrNotFound {
		dev := model.Device{
			SessionID:  sessionID,
			DeviceID:   deviceID,
			DeviceType: deviceType,
			DeviceName: deviceName,
		}
		if err := ctrl.store.Devices().Add(&dev); err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else {
		if _, err := ctrl.store.Devices().SetConnected(deviceID, true); err != nil {
			return err
		}
	}

	ctrl.table.Put(deviceID, sessionID, deviceType, deviceName, ch)
	activeConnections.Set(float64(ctrl.table.count()))

	if err := ctrl.publishDeviceStatus(sessionID, deviceID, deviceStatusConnected); err != nil {
		log.Errorf("relay controller could not publish device status: %v", err)
	}

	log.Infof("relay registered device '%s' in session '%s'", deviceID, sessionID)
	return nil
}

// unregisterDevice runs the cleanup path shared by explicit leave,
// transport close and transport error. It reports false when the
// connection table entry no longer belongs to the closing channel, in
// which case nothing is touched: a newer join owns the deviceId now.
func (ctrl *Controller) unregisterDevice(ch *Channel, sessionID, deviceID string) bool {
	if !ctrl.table.Remove(deviceID, ch) {
		log.Debugf("relay skipped cleanup for device '%s': entry owned by a newer connection", deviceID)
		return false
	}
	activeConnections.Set(float64(ctrl.table.count()))

	// The record is kept so the session's device history survives, only
	// the connectivity mirror is cleared.
	if _, err := ctrl.store.Devices().SetConnected(deviceID, false); err != nil {
		log.Errorf("relay controller failed to update device status: %v", err)
	}

	leave := &proto.Message{
		Type:      proto.MessageTypeLeaveSession,
		SessionID: sessionID,
		DeviceID:  deviceID,
	}
	if data, err := leave.Marshal(); err == nil {
		ctrl.broadcastToSession(sessionID, data, deviceID)
	}

	if err := ctrl.publishDeviceStatus(sessionID, deviceID, deviceStatusDisconnected); err != nil {
		log.Errorf("relay controller could not publish device status: %v", err)
	}

	log.Infof("relay unregistered device '%s' from session '%s'", deviceID, sessionID)
	return true
}

// sessionRoster builds the session_devices payload for a joining
// connection from the device registry.
func (ctrl *Controller) sessionRoster(sessionID string) (*proto.SessionDevicesPayload, error) {
	devices, err := ctrl.store.Devices().FetchBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	roster := &proto.SessionDevicesPayload{
		Devices: make([]proto.SessionDevice, 0, len(devices)),
	}
	for _, dev := range devices {
		roster.Devices = append(roster.Devices, proto.SessionDevice{
			DeviceID:    dev.DeviceID,
			DeviceType:  dev.DeviceType,
			DeviceName:  dev.DeviceName,
			IsConnected: dev.IsConnected,
			LastPing:    dev.LastPing,
		})
	}

	return roster, nil
}
