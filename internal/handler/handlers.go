// Package handler is the HTTP entry point after the router.
//
// It binds and validates requests using the validation package,
// calls the service layer and writes the response.
package handler

import (
	"github.com/deppfellow/greeter/internal/server"
	"github.com/deppfellow/greeter/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Greeting *GreetingHandler // Greeting serves the JSON-RPC endpoint.
	Health   *HealthHandler   // Health serves liveness and status endpoints.
	Info     *InfoHandler     // Info serves the configuration page.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Greeting: NewGreetingHandler(s, services.Greeting),
		Health:   NewHealthHandler(s, services.Greeting),
		Info:     NewInfoHandler(s),
	}
}
