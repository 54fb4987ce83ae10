package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/greeter/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNewLoggerWithWriterJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := NewLoggerWithWriter(&buf, cfg, NewLoggerService(cfg))

	log.Info().Msg("dropped")
	log.Warn().Str("k", "v").Msg("kept")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())

	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.Equal(t, config.ServiceName, line["service"])
	assert.Equal(t, "production", line["environment"])
	assert.Equal(t, "warn", line["level"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNewLoggerWithWriterConsole(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Format = "console"

	var buf bytes.Buffer
	log := NewLoggerWithWriter(&buf, cfg, nil)
	log.Info().Msg("hello console")

	assert.Contains(t, buf.String(), "hello console")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestLoggerServiceWithoutLicenseKey(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, service.GetApplication())
	assert.NotPanics(t, service.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	assert.NotPanics(t, nilService.Shutdown)
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := WithTraceContext(base, nil)
	log.Info().Msg("x")

	assert.NotContains(t, buf.String(), "trace.id")
}
