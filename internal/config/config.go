// Package config manages environment variables.
//
// It reads variables from the process environment (and from a `.env`
// file when one exists), loads them into structured Go types, applies
// defaults and validates the result so the rest of the application can
// rely on a single immutable value read once at boot.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Two env sources feed the same koanf instance:

	- The deployment-facing names the service has always used
	  (BASE_URL, CLIENT_URL, PORT). They carry no prefix and are mapped
	  explicitly onto their dotted keys.
	- Everything else is read with the GREETER_ prefix. Keys are
	  lowercased and the prefix removed, so nested struct fields are
	  addressed with "." in the variable name:
	    GREETER_OBSERVABILITY.LOGGING.LEVEL -> observability.logging.level
*/

// EnvPrefix is the prefix for namespaced configuration variables.
const EnvPrefix = "GREETER_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as seconds.
type ServerConfig struct {
	// BaseURL is the host the HTTP server binds to.
	BaseURL string `koanf:"base_url" validate:"required"`

	// ClientURL is the single origin allowed to call the API from a browser.
	ClientURL string `koanf:"client_url" validate:"required,url"`

	Port         string `koanf:"port" validate:"required,numeric"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required,min=1"`
}

const (
	DefaultEnv          = "development"
	DefaultBaseURL      = "0.0.0.0"
	DefaultClientURL    = "http://localhost:8080"
	DefaultPort         = "8080"
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
	DefaultIdleTimeout  = 60
)

// legacyKeys maps the unprefixed variable names onto koanf keys.
var legacyKeys = map[string]string{
	"BASE_URL":   "server.base_url",
	"CLIENT_URL": "server.client_url",
	"PORT":       "server.port",
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
//
// Behavior summary:
//   - Loads BASE_URL, CLIENT_URL and PORT
//   - Loads env vars with prefix GREETER_ (these win over the unprefixed ones)
//   - Ignores variables that are set but blank
//   - Unmarshals into Config and fills in defaults for anything unset
//   - Validates struct tags, then observability-specific rules
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// An empty key from the callback tells the provider to skip the variable.
	// Blank values are skipped too so they never shadow a default.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyKeys[key], value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", EnvPrefix, err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment are forced so telemetry sees consistent
	// naming regardless of what was configured.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = DefaultEnv
	}

	s := &c.Server
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.ClientURL == "" {
		s.ClientURL = DefaultClientURL
	}
	if s.Port == "" {
		s.Port = DefaultPort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}

	// If observability config wasn't provided at all, inject the defaults.
	// A partial block only gets its empty fields filled.
	defaults := DefaultObservabilityConfig()
	if c.Observability == nil {
		c.Observability = defaults
		return
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = defaults.Logging.Level
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = defaults.Logging.Format
	}
}
