package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers GET /healthz for load balancers and uptime checks.
// It deliberately touches no dependency: the booking service keeps
// serving availability reads even when Redis or the broker is down, so
// the probe only reports that the process is accepting requests.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
