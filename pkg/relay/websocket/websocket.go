package websocket

import (
	"io"
	"net"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	log "github.com/sirupsen/logrus"
)

type Flag int

const (
	FlagContinue Flag = iota
	FlagCloseGracefully
	FlagTerminate
)

type OutboxMessage struct {
	Flag Flag
	Data []byte
}

type InboxMessage struct {
	Data []byte
}

// Driver owns the raw websocket connection. It pumps inbound text
// frames into Inbox and writes everything queued on Outbox, one worker
// per direction. When either worker exits the terminate channel is
// closed exactly once, which tells the HTTP handler to drop the
// connection.
type Driver struct {
	conn   net.Conn
	Inbox  chan *InboxMessage
	Outbox chan *OutboxMessage

	terminateCh    chan<- struct{}
	terminatedOnce sync.Once

	stopCh   chan struct{}
	stopOnce sync.Once

	wg sync.WaitGroup
}

func NewDriver(conn net.Conn, terminateCh chan<- struct{}) *Driver {
	return &Driver{
		conn:        conn,
		Inbox:       make(chan *InboxMessage, 100),
		Outbox:      make(chan *OutboxMessage, 100),
		terminateCh: terminateCh,
		stopCh:      make(chan struct{}),
	}
}

func (driver *Driver) Start() {
	driver.wg.Add(1)
	go driver.inboxWorker()
	driver.wg.Add(1)
	go driver.outboxWorker()
}

// Close blocks until both workers have exited.
func (driver *Driver) Close() {
	driver.wg.Wait()
	log.Debug("websocket driver closed")
}

func (driver *Driver) exitWorker() {
	defer driver.wg.Done()
	driver.safeCloseTerminateChannel()
	driver.safeCloseStopChannel()
}

func (driver *Driver) safeCloseTerminateChannel() {
	driver.terminatedOnce.Do(func() {
		close(driver.terminateCh)
	})
}

func (driver *Driver) safeCloseStopChannel() {
	driver.stopOnce.Do(func() {
		close(driver.stopCh)
	})
}

func (driver *Driver) inboxWorker() {
	defer driver.exitWorker()

	state := ws.StateServerSide
	ch := wsutil.ControlFrameHandler(driver.conn, state)

	r := &wsutil.Reader{
		Source:         driver.conn,
		State:          state,
		CheckUTF8:      true,
		OnIntermediate: ch,
	}

	for {
		h, err := r.NextFrame()
		if err != nil {
			log.Errorf("websocket read message error: %v", err)
			return
		}

		// Control frames are handled before continuation. OpClose means
		// the client is gone and the worker can exit, which triggers
		// the cleanup path.
		if h.OpCode.IsControl() {
			if h.OpCode == ws.OpClose {
				log.Info("websocket connection closed by client")
				return
			}

			if err = ch(h, r); err != nil {
				log.Errorf("websocket handles control frame error: %v", err)
				return
			}
			continue
		}

		req, err := io.ReadAll(r)
		if err != nil {
			log.Errorf("websocket read error: %v", err)
			return
		}

		driver.Inbox <- NewInboxMessage(req)
	}
}

func (driver *Driver) outboxWorker() {
	defer driver.exitWorker()

	state := ws.StateServerSide
	w := wsutil.NewWriter(driver.conn, state, 0)

	for {
		select {
		case res := <-driver.Outbox:
			if err := writeText(driver.conn, w, state, res.Data); err != nil {
				log.Errorf("websocket terminates because of write error: %s", err.Error())
				return
			}

			switch res.Flag {
			case FlagCloseGracefully:
				closeGraceful(driver.conn, w, state)
				return
			case FlagTerminate:
				return
			}
		case <-driver.stopCh:
			return
		}
	}
}

func writeText(conn net.Conn, w *wsutil.Writer, state ws.State, data []byte) error {
	w.Reset(conn, state, ws.OpText)

	var err error
	if _, err = w.Write(data); err == nil {
		err = w.Flush()
	}

	return err
}

func closeGraceful(conn net.Conn, w *wsutil.Writer, state ws.State) {
	log.Info("websocket graceful close initiated")

	w.Reset(conn, state, ws.OpClose)

	var err error
	if _, err = w.Write([]byte("")); err == nil {
		err = w.Flush()
	}
	if err != nil {
		log.Errorf("websocket write error: %s", err)
	}
}

func NewOutboxMessage(flag Flag, data []byte) *OutboxMessage {
	m := &OutboxMessage{
		Flag: flag,
	}
	if data != nil {
		m.Data = make([]byte, len(data))
		copy(m.Data, data)
	}
	return m
}

func NewInboxMessage(data []byte) *InboxMessage {
	m := &InboxMessage{}
	if data != nil {
		m.Data = make([]byte, len(data))
		copy(m.Data, data)
	}
	return m
}
