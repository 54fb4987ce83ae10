package model

import (
	"encoding/json"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingResponseWireShape(t *testing.T) {
	req := GreetingRequest{ID: "1", JSONRPC: "2.0", Method: MethodGreeting}

	body, err := json.Marshal(NewGreetingResponse(req, "Hello, World!"))
	require.NoError(t, err)

	assert.Equal(t, `{"id":"1","jsonrpc":"2.0","result":{"greeting":"Hello, World!"}}`, string(body))
}

func TestMethodNotFoundResponseWireShape(t *testing.T) {
	req := GreetingRequest{ID: "1", JSONRPC: "2.0", Method: "foo"}

	resp := NewMethodNotFoundResponse(req)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), resp.Error.Code)
	assert.Equal(t, int64(-32601), resp.Error.Code)
	assert.Equal(t, MethodNotFoundMessage, resp.Error.Message)

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Equal(t,
		`{"id":"1","jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found","data":{"method":"foo"}}}`,
		string(body))
}

func TestMethodNotFoundEchoesMethodVerbatim(t *testing.T) {
	for _, method := range []string{"", " greeting", "GREETING", "<script>&", `qu"ote`, "héllo"} {
		resp := NewMethodNotFoundResponse(GreetingRequest{Method: method})

		var data MethodNotFoundData
		require.NoError(t, json.Unmarshal(*resp.Error.Data, &data))
		assert.Equal(t, method, data.Method)
	}
}

func TestMethodNotFoundDataIsNotHTMLEscaped(t *testing.T) {
	resp := NewMethodNotFoundResponse(GreetingRequest{Method: "<b>&"})

	assert.Equal(t, `{"method":"<b>&"}`, string(*resp.Error.Data))
}

func TestResponsesShareEnvelope(t *testing.T) {
	req := GreetingRequest{ID: "abc", JSONRPC: "1.0", Method: "x"}

	var responses = []Response{
		NewGreetingResponse(req, "Hello, x!"),
		NewMethodNotFoundResponse(req),
	}

	for _, resp := range responses {
		assert.Equal(t, Envelope{ID: "abc", JSONRPC: "1.0"}, resp.Head())
	}
}

func TestResponseVariantsAreDistinguishedByKey(t *testing.T) {
	req := GreetingRequest{ID: "1", JSONRPC: "2.0"}

	decode := func(r Response) map[string]json.RawMessage {
		body, err := json.Marshal(r)
		require.NoError(t, err)
		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &fields))
		return fields
	}

	ok := decode(NewGreetingResponse(req, "Hello, World!"))
	assert.Contains(t, ok, "result")
	assert.NotContains(t, ok, "error")

	failed := decode(NewMethodNotFoundResponse(req))
	assert.Contains(t, failed, "error")
	assert.NotContains(t, failed, "result")
}
