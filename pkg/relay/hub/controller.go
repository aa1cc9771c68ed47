package hub

import (
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/relay/websocket"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

// defaultPingInterval is how often a joined connection receives an
// unsolicited ping. The heartbeat keeps idle-timeout middleboxes from
// dropping the socket, it never force-closes a silent peer.
const defaultPingInterval = 30 * time.Second

// TelemetrySink receives every ingested telemetry sample as a side
// effect, e.g. for long-term storage in a time series database. It is
// never consulted for routing.
type TelemetrySink interface {
	Write(sample *model.TelemetrySample) error
}

// Controller owns the connection table and the stores. Every channel
// routes its messages through it.
type Controller struct {
	nc           *nats.Conn
	store        storage.Interface
	table        *Table
	sink         TelemetrySink
	pingInterval time.Duration
}

func NewController(nc *nats.Conn, store storage.Interface) *Controller {
	return &Controller{
		nc:           nc,
		store:        store,
		table:        NewTable(),
		pingInterval: defaultPingInterval,
	}
}

// SetTelemetrySink attaches an optional sink for ingested samples.
func (ctrl *Controller) SetTelemetrySink(sink TelemetrySink) {
	ctrl.sink = sink
}

// Store exposes the stores for the REST surface, which reads the same
// state the router writes to.
func (ctrl *Controller) Store() storage.Interface {
	return ctrl.store
}

// NewChannel binds a fresh websocket connection to the controller and
// starts consuming its inbound frames.
func (ctrl *Controller) NewChannel(driver *websocket.Driver) *Channel {
	ch := newChannel(ctrl, driver.Outbox)
	go ch.inboxWorker(driver.Inbox)
	return ch
}

// broadcastToSession delivers data to every connection in the session
// except excludeDeviceID. Membership is a snapshot taken now, devices
// joining or leaving mid-fanout are not included.
func (ctrl *Controller) broadcastToSession(sessionID string, data []byte, excludeDeviceID string) {
	for _, conn := range ctrl.table.ListBySession(sessionID) {
		if conn.DeviceID == excludeDeviceID {
			continue
		}
		if !conn.channel.push(websocket.FlagContinue, data) {
			log.Warnf("relay dropped broadcast frame for device '%s': outbox full", conn.DeviceID)
		}
		messagesSent.Inc()
	}
}

// broadcastToSessionAndType delivers data only to connections of the
// given device class within the session.
func (ctrl *Controller) broadcastToSessionAndType(sessionID string, deviceType model.DeviceType, data []byte) {
	for _, conn := range ctrl.table.ListBySessionAndType(sessionID, deviceType) {
		if !conn.channel.push(websocket.FlagContinue, data) {
			log.Warnf("relay dropped broadcast frame for device '%s': outbox full", conn.DeviceID)
		}
		messagesSent.Inc()
	}
}

// sendToDevice delivers data to a single device. It reports false when
// the device has no live connection, the caller decides how to surface
// that.
func (ctrl *Controller) sendToDevice(deviceID string, data []byte) bool {
	conn, ok := ctrl.table.Get(deviceID)
	if !ok {
		return false
	}

	if !conn.channel.push(websocket.FlagContinue, data) {
		log.Warnf("relay dropped frame for device '%s': outbox full", conn.DeviceID)
		return false
	}

	messagesSent.Inc()
	return true
}
