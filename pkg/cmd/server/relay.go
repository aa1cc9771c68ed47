package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	nats "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ojassapate/drone-cam/config"
	"github.com/ojassapate/drone-cam/pkg/api"
	"github.com/ojassapate/drone-cam/pkg/relay"
	"github.com/ojassapate/drone-cam/pkg/relay/hub"
	"github.com/ojassapate/drone-cam/pkg/relay/sink"
	"github.com/ojassapate/drone-cam/pkg/storage"
	"github.com/ojassapate/drone-cam/pkg/storage/memory"
	"github.com/ojassapate/drone-cam/pkg/storage/postgres"
)

type relayServer struct {
	c *config.Config

	quitCh chan bool
	doneCh chan bool

	nc     *nats.Conn
	influx *sink.InfluxWriter
	errCh  chan error
}

func init() {
	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logrus.SetFormatter(formatter)

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

func newRelayServer(c *config.Config) (*relayServer, error) {
	s := &relayServer{
		c:      c,
		quitCh: make(chan bool),
		doneCh: make(chan bool),
		errCh:  make(chan error, 1),
	}

	// The broker is optional: without it the relay runs standalone and
	// just skips event publishing.
	if c.NATSServerURL != "" {
		nc, err := nats.Connect(c.NATSServerURL,
			nats.DrainTimeout(10*time.Second),
			nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
				s.errCh <- err
			}),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Warnf("Disconnected from NATS: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Info("Reconnected to NATS")
			}))
		if err != nil {
			return nil, err
		}
		s.nc = nc
	}

	return s, nil
}

func (s *relayServer) newStore() storage.Interface {
	if s.c.DatabaseURL == "" {
		log.Info("No database configured, using in-memory stores")
		return memory.NewStore()
	}

	db, err := sqlx.Open("postgres", s.c.DatabaseURL)
	if err != nil {
		log.Errorf("Failed to open database, falling back to in-memory stores: %v", err)
		return memory.NewStore()
	}
	if err := db.Ping(); err != nil {
		log.Errorf("Failed to reach database, falling back to in-memory stores: %v", err)
		return memory.NewStore()
	}

	return postgres.NewStore(db)
}

func (s *relayServer) Serve() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(logger())

	// Create the controller
	ctrl := hub.NewController(s.nc, s.newStore())

	if s.c.InfluxURL != "" {
		s.influx = sink.NewInfluxWriter(s.c.InfluxURL, s.c.InfluxToken,
			s.c.InfluxOrg, s.c.InfluxBucket)
		ctrl.SetTelemetrySink(s.influx)
	}

	// Register the relay endpoint
	relayHandler := relay.NewHandler(ctrl)
	relayHandler.RegisterRoutes(e)

	// Register API endpoints
	apiHandler := api.NewHandler(ctrl.Store())
	apiHandler.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		log.WithFields(log.Fields{
			"host": s.c.BindHost,
			"port": s.c.BindPort,
		}).Info("Starting server")

		if err := e.Start(fmt.Sprintf("%s:%d", s.c.BindHost, s.c.BindPort)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	// Wait until receiving the quit signal
	<-s.quitCh
	log.Info("Shutdown signal received")

	// Create a 10 second timeout context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the echo web server
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}

	// We've done!
	s.doneCh <- true
}

func (s *relayServer) Shutdown() {
	if s.nc != nil {
		s.nc.Drain()
	}
	if s.influx != nil {
		s.influx.Close()
	}

	// Send the quit signal to the server.Serve() routine
	s.quitCh <- true

	// Wait up to 10 seconds
	select {
	case <-s.doneCh:
		log.Info("Shutdown server successful")
	case <-time.After(10 * time.Second):
		log.Error("Shutdown server failed")
	}
}

// Logger returns a middleware that logs HTTP requests.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			var err error
			if err = next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}
			reqSizeStr := req.Header.Get(echo.HeaderContentLength)
			if reqSizeStr == "" {
				reqSizeStr = "0"
			}
			reqSize, err := strconv.ParseInt(reqSizeStr, 10, 0)
			if err != nil {
				reqSize = -1
			}
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			}

			log.WithFields(log.Fields{
				"timestamp":     stop.Format(time.RFC3339),
				"id":            id,
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"method":        req.Method,
				"uri":           req.RequestURI,
				"protocol":      req.Proto,
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"status_text":   http.StatusText(res.Status),
				"referer":       req.Referer(),
				"error":         errMsg,
				"bytes_in":      reqSize,
				"bytes_out":     res.Size,
				"latency":       stop.Sub(start).Nanoseconds(),
				"latency_human": stop.Sub(start).String(),
			}).Infof("%s %s %s %d %s", req.Method, req.RequestURI, req.Proto,
				res.Status, strconv.FormatInt(res.Size, 10))

			return err
		}
	}
}

func RunServeRelay(c *config.Config) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		s, err := newRelayServer(c)
		if err != nil {
			log.Error("failed to create new server instance: ", err)
			os.Exit(1)
		}

		go s.Serve()

		// Wait for interrupt signal to gracefully shutdown the server
		quitCh := make(chan os.Signal, 1)
		signal.Notify(quitCh, os.Interrupt, syscall.SIGTERM)
		<-quitCh

		// Shutdown the server
		s.Shutdown()
	}
}
