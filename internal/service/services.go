// Package service contains the business logic.
//
// It sits behind the handler layer: handlers decode and validate HTTP
// input, then hand plain model values to a service and write back
// whatever it returns.
package service

import (
	"github.com/deppfellow/greeter/internal/server"
)

// Services groups every service the handlers depend on.
type Services struct {
	Greeting *GreetingService
}

// NewServices constructs the service container.
func NewServices(s *server.Server) *Services {
	return &Services{
		Greeting: NewGreetingService(s.Logger),
	}
}
