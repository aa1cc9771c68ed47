package hub

import (
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/relay/proto"
)

// handleSignaling relays an offer, answer or ice_candidate frame to
// exactly one recipient. The inbound deviceId names the target, on the
// way out it is rewritten to the sender so the recipient knows who the
// handshake is from. The payload is never inspected.
func (ch *Channel) handleSignaling(msg *proto.Message) {
	senderID, sessionID := ch.bound()

	if msg.DeviceID == "" || sessionID == "" || len(msg.Payload) == 0 {
		ch.errorReply("Missing required fields for signaling")
		return
	}

	targetID := msg.DeviceID
	msg.DeviceID = senderID

	data, err := msg.Marshal()
	if err != nil {
		log.Errorf("relay channel could not marshal signaling message: %v", err)
		return
	}

	// Fire-and-forget: on a missing target the payload is dropped, the
	// application layer re-initiates a stalled handshake itself.
	if !ch.ctrl.sendToDevice(targetID, data) {
		ch.errorReply("Target device not connected")
		return
	}

	signalsRelayed.Inc()
}

func (ch *Channel) handleSwitchCamera(msg *proto.Message) {
	_, sessionID := ch.bound()

	if sessionID == "" || len(msg.Payload) == 0 {
		ch.errorReply("Invalid camera switch request")
		return
	}

	data, err := msg.Marshal()
	if err != nil {
		log.Errorf("relay channel could not marshal camera switch message: %v", err)
		return
	}

	// Every session member sees the camera switch, the sender included.
	ch.ctrl.broadcastToSession(sessionID, data, "")
}

func (ch *Channel) handleDroneCommand(msg *proto.Message) {
	_, sessionID := ch.bound()

	if sessionID == "" || len(msg.Payload) == 0 {
		ch.errorReply("Invalid drone command")
		return
	}

	data, err := msg.Marshal()
	if err != nil {
		log.Errorf("relay channel could not marshal drone command: %v", err)
		return
	}

	ch.ctrl.broadcastToSessionAndType(sessionID, model.DeviceTypeDrone, data)
}
