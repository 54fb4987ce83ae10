package middleware

import (
	"github.com/deppfellow/greeter/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// the router receives a single value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger to every request.
	ContextEnhancer *ContextEnhancer

	// Tracing wires New Relic transactions into echo.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components. When New Relic is
// not configured the tracing middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
