package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/greeter/internal/config"
	"github.com/deppfellow/greeter/internal/handler"
	"github.com/deppfellow/greeter/internal/logger"
	"github.com/deppfellow/greeter/internal/server"
	"github.com/deppfellow/greeter/internal/service"
)

const clientURL = "http://localhost:8080"

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"

	log := zerolog.Nop()
	s, err := server.New(&config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			BaseURL:      "127.0.0.1",
			ClientURL:    clientURL,
			Port:         "8080",
			ReadTimeout:  config.DefaultReadTimeout,
			WriteTimeout: config.DefaultWriteTimeout,
			IdleTimeout:  config.DefaultIdleTimeout,
		},
		Observability: obs,
	}, &log, logger.NewLoggerService(obs))
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, service.NewServices(s)))
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGreetingScenarios(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "plain name",
			in:   `{"id":"1","jsonrpc":"2.0","method":"greeting","params":{"name":"Ada"}}`,
			out:  `{"id":"1","jsonrpc":"2.0","result":{"greeting":"Hello, Ada!"}}`,
		},
		{
			name: "empty name",
			in:   `{"id":"2","jsonrpc":"2.0","method":"greeting","params":{"name":""}}`,
			out:  `{"id":"2","jsonrpc":"2.0","result":{"greeting":"Hello, World!"}}`,
		},
		{
			name: "padded name",
			in:   `{"id":"3","jsonrpc":"2.0","method":"greeting","params":{"name":"  Bob  "}}`,
			out:  `{"id":"3","jsonrpc":"2.0","result":{"greeting":"Hello, Bob!"}}`,
		},
		{
			name: "unknown method",
			in:   `{"id":"4","jsonrpc":"2.0","method":"ping","params":{"name":"x"}}`,
			out:  `{"id":"4","jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found","data":{"method":"ping"}}}`,
		},
		{
			name: "html special characters pass through",
			in:   `{"id":"5","jsonrpc":"2.0","method":"greeting","params":{"name":"<b>\"Tom\" & Jerry</b>"}}`,
			out:  `{"id":"5","jsonrpc":"2.0","result":{"greeting":"Hello, <b>\"Tom\" & Jerry</b>!"}}`,
		},
		{
			name: "unknown method with html characters",
			in:   `{"id":"6","jsonrpc":"2.0","method":"<script>","params":{"name":"x"}}`,
			out:  `{"id":"6","jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found","data":{"method":"<script>"}}}`,
		},
	}

	for _, path := range GreetingPaths {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				rec := post(r, path, tt.in)

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
				assert.Equal(t, tt.out, strings.TrimSpace(rec.Body.String()))
			})
		}
	}
}

func TestGreetingRejectsBadRequests(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"id":"1",`, ""},
		{"wrong type", `{"id":1,"jsonrpc":"2.0","method":"greeting","params":{"name":"x"}}`, ""},
		{"missing params", `{"id":"1","jsonrpc":"2.0","method":"greeting"}`, "params"},
		{"missing name", `{"id":"1","jsonrpc":"2.0","method":"greeting","params":{}}`, "params.name"},
		{"missing id", `{"jsonrpc":"2.0","method":"greeting","params":{"name":"x"}}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(r, "/", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
			if tt.field != "" {
				assert.Contains(t, rec.Body.String(), `"field":"`+tt.field+`"`)
			}
		})
	}
}

func TestGreetingRequiresJSONContentType(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api",
		strings.NewReader(`{"id":"1","jsonrpc":"2.0","method":"greeting","params":{"name":"x"}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	t.Run("health check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health_check", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("env vars page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), clientURL)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"METHOD_NOT_ALLOWED"`)
	})
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health_check", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "trace-me", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed origin", func(t *testing.T) {
		rec := preflight(clientURL)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, clientURL, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost)
		assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
		assert.Equal(t, "3600", rec.Header().Get(echo.HeaderAccessControlMaxAge))

		allowHeaders := rec.Header().Get(echo.HeaderAccessControlAllowHeaders)
		assert.Contains(t, allowHeaders, echo.HeaderContentType)
		assert.Contains(t, allowHeaders, echo.HeaderAuthorization)
	})

	t.Run("other origin", func(t *testing.T) {
		rec := preflight("http://evil.example")

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api",
			strings.NewReader(`{"id":"1","jsonrpc":"2.0","method":"greeting","params":{"name":"x"}}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderOrigin, clientURL)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, clientURL, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}
