package api

import (
	"net/http"

	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"

	"github.com/ojassapate/drone-cam/pkg/api/resource"
	"github.com/ojassapate/drone-cam/pkg/storage"
)

func (h *Handler) handleGetLatestTelemetry(c echo.Context) error {
	deviceID := c.Param("deviceId")

	sample, err := h.store.Telemetry().LatestByDeviceID(deviceID)
	if err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound,
			messageResponse{Message: "No telemetry data found for device"})
	} else if err != nil {
		log.Errorf("api failed to fetch telemetry: %v", err)
		return c.JSON(http.StatusInternalServerError,
			messageResponse{Message: "Error fetching telemetry data"})
	}

	return c.JSON(http.StatusOK, resource.NewTelemetry(sample))
}
