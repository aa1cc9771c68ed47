package hub

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/relay/proto"
	"github.com/ojassapate/drone-cam/pkg/relay/websocket"
)

type Status int

const (
	StatusEstablished Status = iota
	StatusJoined
)

// Channel is the per-connection handling context. Frames of one
// connection arrive strictly sequential through HandleMessage, the
// only concurrent entry points are the heartbeat and the cleanup path.
type Channel struct {
	sync.RWMutex
	ctrl          *Controller
	status        Status
	deviceID      string
	sessionID     string
	lastMessageAt time.Time
	cleanedUp     bool
	pingStopCh    chan struct{}

	outbox   chan *websocket.OutboxMessage
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newChannel(ctrl *Controller, outbox chan *websocket.OutboxMessage) *Channel {
	return &Channel{
		ctrl:   ctrl,
		status: StatusEstablished,
		outbox: outbox,
		stopCh: make(chan struct{}),
	}
}

// Close is called when the websocket handler method is exiting, e.g.
// the connection is closed or errored. It runs the same cleanup path as
// an explicit leave_session and is safe to call more than once.
func (ch *Channel) Close() {
	ch.stopOnce.Do(func() {
		close(ch.stopCh)
	})
	ch.cleanup()
}

func (ch *Channel) inboxWorker(inbox <-chan *websocket.InboxMessage) {
	for {
		select {
		case msg := <-inbox:
			ch.HandleMessage(msg.Data)
		case <-ch.stopCh:
			return
		}
	}
}

// HandleMessage is the single entry point for every inbound frame on
// this connection.
func (ch *Channel) HandleMessage(data []byte) {
	log.Debugf("relay channel handles message '%s'", string(data))
	messagesReceived.Inc()

	msg, err := proto.UnmarshalMessage(data)
	if err != nil {
		if ve, ok := err.(*proto.ValidationError); ok {
			ch.errorReply(ve.Error())
		} else {
			ch.errorReply("Invalid message format")
		}
		return
	}

	ch.Lock()
	ch.lastMessageAt = time.Now().Round(time.Second).UTC()
	ch.Unlock()

	switch msg.Type {
	case proto.MessageTypeJoinSession:
		ch.handleJoin(msg)
	case proto.MessageTypeLeaveSession:
		ch.handleLeave()
	case proto.MessageTypeTelemetry:
		ch.handleTelemetry(msg)
	case proto.MessageTypeOffer, proto.MessageTypeAnswer, proto.MessageTypeICECandidate:
		ch.handleSignaling(msg)
	case proto.MessageTypeSwitchCamera:
		ch.handleSwitchCamera(msg)
	case proto.MessageTypeDroneCommand:
		ch.handleDroneCommand(msg)
	case proto.MessageTypePing:
		ch.handlePing()
	case proto.MessageTypePong:
		ch.handlePong()
	case proto.MessageTypeError:
		// Client-reported errors are recorded, nothing is routed.
		log.Infof("relay channel received error frame from device '%s'", ch.boundDeviceID())
	}
}

// bound returns the joined identity of this connection, empty strings
// while no join succeeded yet.
func (ch *Channel) bound() (deviceID, sessionID string) {
	ch.RLock()
	defer ch.RUnlock()
	return ch.deviceID, ch.sessionID
}

func (ch *Channel) boundDeviceID() string {
	deviceID, _ := ch.bound()
	return deviceID
}

// heartbeat sends an unsolicited ping every interval while the
// connection stays joined. Silent peers are not force-closed here,
// detecting a dead socket is the transport's job.
func (ch *Channel) heartbeat(stopCh <-chan struct{}) {
	data, err := proto.MarshalNewPingMessage()
	if err != nil {
		return
	}

	ticker := time.NewTicker(ch.ctrl.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ch.push(websocket.FlagContinue, data)
		case <-stopCh:
			return
		}
	}
}

// cleanup runs at most once per joined identity: it stops the
// heartbeat, evicts the connection table entry (identity-guarded),
// clears the registry's connectivity mirror and notifies the rest of
// the session. A connection that never joined has nothing to clean up.
func (ch *Channel) cleanup() {
	ch.Lock()
	if ch.cleanedUp {
		ch.Unlock()
		return
	}
	ch.cleanedUp = true

	deviceID, sessionID := ch.deviceID, ch.sessionID
	if ch.pingStopCh != nil {
		close(ch.pingStopCh)
		ch.pingStopCh = nil
	}
	ch.status = StatusEstablished
	ch.deviceID = ""
	ch.sessionID = ""
	ch.Unlock()

	if deviceID == "" {
		return
	}

	ch.ctrl.unregisterDevice(ch, sessionID, deviceID)
}

func (ch *Channel) push(flag websocket.Flag, data []byte) bool {
	select {
	case ch.outbox <- websocket.NewOutboxMessage(flag, data):
		return true
	default:
		return false // Buffer is full
	}
}

func (ch *Channel) sendMessage(msg *proto.Message) {
	data, err := msg.Marshal()
	// This error should never happen. If it does, log it loudly and
	// drop the frame, the connection itself stays healthy.
	if err != nil {
		log.Errorf("relay channel could not marshal message: %v", err)
		return
	}
	ch.push(websocket.FlagContinue, data)
}

func (ch *Channel) errorReply(description string) {
	errorsSent.Inc()

	data, err := proto.MarshalNewErrorMessage(description)
	if err != nil {
		log.Errorf("relay channel could not marshal error message: %v", err)
		return
	}
	ch.push(websocket.FlagContinue, data)
}
