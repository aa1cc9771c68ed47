// Package api exposes the thin REST surface over the relay's stores.
package api

import (
	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/storage"
)

// Handler contains all properties to serve the API
type Handler struct {
	store storage.Interface
}

// NewHandler create a new API handler
func NewHandler(store storage.Interface) *Handler {
	return &Handler{
		store: store,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api")

	api.POST("/sessions", h.handleCreateSession)
	api.GET("/sessions/:sessionId", h.handleGetSession)
	api.DELETE("/sessions/:sessionId", h.handleDeactivateSession)

	api.GET("/devices/:deviceId/telemetry", h.handleGetLatestTelemetry)
}
