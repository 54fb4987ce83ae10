package service

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/greeter/internal/model"
)

// DefaultGreeting is returned when the name is empty or whitespace only.
const DefaultGreeting = "Hello, World!"

// GreetingService answers greeting requests.
//
// It holds no mutable state and is safe for concurrent use.
type GreetingService struct {
	logger *zerolog.Logger
}

// NewGreetingService constructs a GreetingService. A nil logger disables
// debug output.
func NewGreetingService(logger *zerolog.Logger) *GreetingService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &GreetingService{logger: logger}
}

// Handle maps any request to a response; it never fails. An unknown method
// yields the method-not-found variant, everything else a greeting.
func (s *GreetingService) Handle(req model.GreetingRequest) model.Response {
	if req.Method != model.MethodGreeting {
		s.logger.Debug().
			Str("rpc_id", req.ID).
			Str("rpc_method", req.Method).
			Msg("unknown rpc method")

		return model.NewMethodNotFoundResponse(req)
	}

	return model.NewGreetingResponse(req, Greet(req.Params.Name))
}

// Greet builds the greeting for a raw name. Leading and trailing Unicode
// whitespace is removed; the rest is used as-is.
func Greet(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultGreeting
	}

	return "Hello, " + trimmed + "!"
}
