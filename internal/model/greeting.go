// Package model holds the JSON-RPC envelopes exchanged by the greeting
// endpoint.
//
// A response is one of two variants that share the id/jsonrpc prefix. On
// the wire they are told apart only by which key is present, "result" or
// "error"; there is no discriminant field.
package model

import (
	"bytes"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

// MethodGreeting is the only method the endpoint recognizes.
const MethodGreeting = "greeting"

// MethodNotFoundMessage is the fixed message for unknown methods.
const MethodNotFoundMessage = "Method not found"

// GreetingParams carries the raw, untrimmed name to greet.
type GreetingParams struct {
	Name string `json:"name"`
}

// GreetingRequest is a decoded request envelope. ID and JSONRPC are opaque
// and echoed back verbatim.
type GreetingRequest struct {
	ID      string         `json:"id"`
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  GreetingParams `json:"params"`
}

// Envelope is the prefix shared by both response variants.
type Envelope struct {
	ID      string `json:"id"`
	JSONRPC string `json:"jsonrpc"`
}

// EnvelopeOf copies id and jsonrpc from a request.
func EnvelopeOf(req GreetingRequest) Envelope {
	return Envelope{ID: req.ID, JSONRPC: req.JSONRPC}
}

// Response is implemented by GreetingResponse and MethodNotFoundResponse
// only.
type Response interface {
	// Head returns the shared id/jsonrpc prefix.
	Head() Envelope

	isResponse()
}

// GreetingResult is the success payload.
type GreetingResult struct {
	Greeting string `json:"greeting"`
}

// GreetingResponse is the success variant.
type GreetingResponse struct {
	Envelope
	Result GreetingResult `json:"result"`
}

func (r GreetingResponse) Head() Envelope { return r.Envelope }
func (GreetingResponse) isResponse()      {}

// MethodNotFoundData is attached to the error object of an unknown method.
type MethodNotFoundData struct {
	Method string `json:"method"`
}

// MethodNotFoundResponse is the error variant.
type MethodNotFoundResponse struct {
	Envelope
	Error *jsonrpc2.Error `json:"error"`
}

func (r MethodNotFoundResponse) Head() Envelope { return r.Envelope }
func (MethodNotFoundResponse) isResponse()      {}

// NewGreetingResponse builds the success variant for req.
func NewGreetingResponse(req GreetingRequest, greeting string) GreetingResponse {
	return GreetingResponse{
		Envelope: EnvelopeOf(req),
		Result:   GreetingResult{Greeting: greeting},
	}
}

// NewMethodNotFoundResponse builds the error variant for req, echoing the
// received method name in error.data.method.
func NewMethodNotFoundResponse(req GreetingRequest) MethodNotFoundResponse {
	raw := encodeUnescaped(MethodNotFoundData{Method: req.Method})

	return MethodNotFoundResponse{
		Envelope: EnvelopeOf(req),
		Error: &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: MethodNotFoundMessage,
			Data:    &raw,
		},
	}
}

// encodeUnescaped marshals v without HTML escaping so names containing
// <, > or & reach the client byte for byte. v must always be encodable.
func encodeUnescaped(v any) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
