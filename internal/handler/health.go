package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/greeter/internal/middleware"
	"github.com/deppfellow/greeter/internal/model"
	"github.com/deppfellow/greeter/internal/server"
	"github.com/deppfellow/greeter/internal/service"
)

// HealthHandler exposes endpoints external systems use to verify the
// service is alive.
type HealthHandler struct {
	Handler
	greeting *service.GreetingService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, greeting *service.GreetingService) *HealthHandler {
	return &HealthHandler{
		Handler:  NewHandler(s),
		greeting: greeting,
	}
}

// Liveness answers 200 with an empty body.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

var probeRequest = model.GreetingRequest{
	ID:      "health",
	JSONRPC: "2.0",
	Method:  model.MethodGreeting,
	Params:  model.GreetingParams{Name: " probe "},
}

const probeGreeting = "Hello, probe!"

// CheckHealth reports overall status, timestamp, environment and a
// self-check of the greeting core. It returns 503 if any check fails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	// ---------------- Greeting self-check ------------------------------------
	greetingStart := time.Now()
	if err := h.checkGreeting(); err != nil {
		checks["greeting"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(greetingStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(greetingStart)).
			Msg("greeting health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       "greeting",
				"operation":        "health_check",
				"response_time_ms": time.Since(greetingStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	} else {
		checks["greeting"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(greetingStart).String(),
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) checkGreeting() error {
	resp, ok := h.greeting.Handle(probeRequest).(model.GreetingResponse)
	if !ok {
		return errors.New("probe request was not answered with a greeting")
	}
	if resp.Result.Greeting != probeGreeting {
		return fmt.Errorf("unexpected probe greeting %q", resp.Result.Greeting)
	}
	if resp.Head() != model.EnvelopeOf(probeRequest) {
		return errors.New("probe envelope was not echoed")
	}
	return nil
}
