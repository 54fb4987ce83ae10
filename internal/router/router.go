// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/greeter/internal/handler"
	"github.com/deppfellow/greeter/internal/middleware"
	"github.com/deppfellow/greeter/internal/server"
)

// GreetingPaths are the paths serving the JSON-RPC endpoint.
var GreetingPaths = []string{"/", "/api"}

// NewRouter builds the echo instance with every middleware and route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	m := middleware.NewMiddlewares(s)

	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.JSONSerializer = jsonSerializer{}
	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request ID and New Relic transaction must exist
	// before the context enhancer builds the request logger, and the
	// request logger must see the logger the enhancer stored.
	r.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.CORS(),
		m.Global.Secure(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
	)

	registerSystemRoutes(r, h)
	registerRPCRoutes(r, h)

	return r
}

func registerRPCRoutes(r *echo.Echo, h *handler.Handlers) {
	greet := handler.Handle[handler.GreetingPayload](h.Greeting.Handler, h.Greeting.Greet, http.StatusOK)

	for _, path := range GreetingPaths {
		r.POST(path, greet)
	}
}
