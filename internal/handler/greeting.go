package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/greeter/internal/model"
	"github.com/deppfellow/greeter/internal/server"
	"github.com/deppfellow/greeter/internal/service"
	"github.com/deppfellow/greeter/internal/validation"
)

// GreetingPayload is the wire form of a greeting request.
//
// Fields are pointers so that presence can be checked: every field must
// be sent, but "name" may be an empty string.
type GreetingPayload struct {
	ID      *string                `json:"id" validate:"required"`
	JSONRPC *string                `json:"jsonrpc" validate:"required"`
	Method  *string                `json:"method" validate:"required"`
	Params  *GreetingParamsPayload `json:"params" validate:"required"`
}

// GreetingParamsPayload is the wire form of the request params.
type GreetingParamsPayload struct {
	Name *string `json:"name" validate:"required"`
}

func (p *GreetingPayload) Validate() error {
	return validation.Struct(p)
}

// ToModel converts a validated payload.
func (p *GreetingPayload) ToModel() model.GreetingRequest {
	return model.GreetingRequest{
		ID:      *p.ID,
		JSONRPC: *p.JSONRPC,
		Method:  *p.Method,
		Params:  model.GreetingParams{Name: *p.Params.Name},
	}
}

// GreetingHandler serves the JSON-RPC greeting endpoint.
type GreetingHandler struct {
	Handler
	greeting *service.GreetingService
}

// NewGreetingHandler constructs a GreetingHandler.
func NewGreetingHandler(s *server.Server, greeting *service.GreetingService) *GreetingHandler {
	return &GreetingHandler{
		Handler:  NewHandler(s),
		greeting: greeting,
	}
}

// Greet answers a validated envelope. Unknown methods are not an HTTP
// error: they come back as a JSON-RPC error object with status 200.
func (h *GreetingHandler) Greet(c echo.Context, req *GreetingPayload) (model.Response, error) {
	resp := h.greeting.Handle(req.ToModel())

	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("rpc.method", *req.Method)
		_, notFound := resp.(model.MethodNotFoundResponse)
		txn.AddAttribute("rpc.method_found", !notFound)
	}

	return resp, nil
}
