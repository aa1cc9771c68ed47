package hub

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/relay/proto"
)

func (ch *Channel) handleJoin(msg *proto.Message) {
	if msg.SessionID == "" || msg.DeviceID == "" || msg.DeviceType == "" || msg.DeviceName == "" {
		ch.errorReply("Missing required fields for joining session")
		return
	}

	// A connection that re-joins under a different deviceId gives up its
	// old identity first, otherwise the old table entry would outlive
	// this socket.
	prevDeviceID, prevSessionID := ch.bound()
	if prevDeviceID != "" && prevDeviceID != msg.DeviceID {
		ch.ctrl.unregisterDevice(ch, prevSessionID, prevDeviceID)
	}

	if err := ch.ctrl.registerDevice(ch, msg.SessionID, msg.DeviceID, msg.DeviceType, msg.DeviceName); err != nil {
		log.Errorf("relay channel failed to register device '%s': %v", msg.DeviceID, err)
		ch.errorReply("Error registering device")
		return
	}

	ch.Lock()
	ch.status = StatusJoined
	ch.deviceID = msg.DeviceID
	ch.sessionID = msg.SessionID
	ch.cleanedUp = false
	if ch.pingStopCh == nil {
		ch.pingStopCh = make(chan struct{})
		go ch.heartbeat(ch.pingStopCh)
	}
	ch.Unlock()

	// Tell everyone else in the session about the newcomer.
	note := &proto.Message{
		Type:       proto.MessageTypeJoinSession,
		SessionID:  msg.SessionID,
		DeviceID:   msg.DeviceID,
		DeviceType: msg.DeviceType,
		DeviceName: msg.DeviceName,
	}
	if data, err := note.Marshal(); err == nil {
		ch.ctrl.broadcastToSession(msg.SessionID, data, msg.DeviceID)
	}

	// The joining connection alone receives the current roster so its
	// UI can render the existing participants.
	roster, err := ch.ctrl.sessionRoster(msg.SessionID)
	if err != nil {
		log.Errorf("relay channel failed to fetch session roster: %v", err)
		return
	}

	payload, err := json.Marshal(roster)
	if err != nil {
		log.Errorf("relay channel could not marshal session roster: %v", err)
		return
	}

	ch.sendMessage(&proto.Message{
		Type:      proto.MessageTypeSessionDevices,
		SessionID: msg.SessionID,
		Payload:   payload,
	})
}

func (ch *Channel) handleLeave() {
	deviceID, _ := ch.bound()
	if deviceID == "" {
		return
	}

	ch.cleanup()
}
