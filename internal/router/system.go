package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/greeter/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// JSON-RPC surface.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Liveness probe: 200, empty body.
	r.GET("/health_check", h.Health.Liveness)

	// Detailed status for humans and dashboards.
	r.GET("/status", h.Health.CheckHealth)

	// Informational page with the configured client URL.
	r.GET("/", h.Info.EnvVars)
}
