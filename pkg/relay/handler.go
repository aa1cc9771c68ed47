// Package relay serves the websocket endpoint every device connects to
// and hands each connection to the session coordination hub.
package relay

import (
	"github.com/gobwas/ws"
	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/relay/hub"
	"github.com/ojassapate/drone-cam/pkg/relay/websocket"
)

// Handler contains all properties to serve the relay endpoint
type Handler struct {
	ctrl *hub.Controller
}

// NewHandler create a new relay handler
func NewHandler(ctrl *hub.Controller) *Handler {
	return &Handler{
		ctrl: ctrl,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register relay routes")
	e.Any("/ws", h.channelHandler())
}

func (h *Handler) channelHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
		if err != nil {
			return err
		}
		defer conn.Close()

		terminateCh := make(chan struct{})
		driver := websocket.NewDriver(conn, terminateCh)
		driver.Start()
		defer driver.Close()

		ch := h.ctrl.NewChannel(driver)
		defer ch.Close()

		<-terminateCh

		log.Debug("handler exit relay channel handler func")
		return nil
	}
}
