package api

import (
	"net/http"

	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/api/resource"
	"github.com/ojassapate/drone-cam/pkg/model"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) handleCreateSession(c echo.Context) error {
	sess := model.Session{}
	if err := h.store.Sessions().Create(&sess); err != nil {
		log.Errorf("api failed to create session: %v", err)
		return c.JSON(http.StatusInternalServerError,
			messageResponse{Message: "Error creating session"})
	}

	return c.JSON(http.StatusCreated, resource.NewSession(&sess))
}

func (h *Handler) handleGetSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	sess, err := h.store.Sessions().FindBySessionID(sessionID)
	if err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound,
			messageResponse{Message: "Session not found"})
	} else if err != nil {
		log.Errorf("api failed to fetch session: %v", err)
		return c.JSON(http.StatusInternalServerError,
			messageResponse{Message: "Error fetching session"})
	}

	devices, err := h.store.Devices().FetchBySessionID(sessionID)
	if err != nil {
		log.Errorf("api failed to fetch session devices: %v", err)
		return c.JSON(http.StatusInternalServerError,
			messageResponse{Message: "Error fetching session"})
	}

	return c.JSON(http.StatusOK, resource.NewSessionDetail(sess, devices))
}

func (h *Handler) handleDeactivateSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	ok, err := h.store.Sessions().Deactivate(sessionID)
	if err != nil {
		log.Errorf("api failed to deactivate session: %v", err)
		return c.JSON(http.StatusInternalServerError,
			messageResponse{Message: "Error deactivating session"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound,
			messageResponse{Message: "Session not found"})
	}

	return c.NoContent(http.StatusNoContent)
}
