// Package config manages environment-driven configuration.
//
// It reads variables (optionally from a `.env` file via godotenv's
// autoload), maps them into structured Go types with koanf, and
// validates required values with go-playground/validator so the app
// fails fast on bad or missing config.
//
// Env vars use the OPALTOOLS_ prefix and dot-delimited nesting, e.g.
// OPALTOOLS_SERVER.PORT -> Config.Server.Port.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the service.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Optimizely    OptimizelyConfig     `koanf:"optimizely" validate:"required"`
	Report        ReportConfig         `koanf:"report" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Email         EmailConfig          `koanf:"email"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as whole seconds in env.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Redis backs the asynq queue used for report notifications.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// OptimizelyConfig holds everything the Optimizely client needs.
//
// AccountID is the fixed account identifier injected into metrics and
// update payloads when the caller does not supply one. It lives here as
// a single named value instead of a literal scattered across call sites.
type OptimizelyConfig struct {
	BaseURL          string `koanf:"base_url" validate:"required,url"`
	AccountID        int64  `koanf:"account_id" validate:"required"`
	DefaultProjectID string `koanf:"default_project_id"`
}

// ReportConfig points at the hosted report-generation function and the
// page where generated reports can be viewed.
type ReportConfig struct {
	FunctionURL       string `koanf:"function_url" validate:"required,url"`
	ReportPageBaseURL string `koanf:"report_page_base_url" validate:"required,url"`
}

// AuthConfig protects the tool surface itself. When BearerToken is set,
// Opal must present it on every invocation; when empty the endpoints are
// open (local development).
type AuthConfig struct {
	BearerToken string `koanf:"bearer_token"`
}

// EmailConfig controls the report-ready notification email.
// When Enabled is false (or the API key is empty) no email is sent and
// no worker task is enqueued.
type EmailConfig struct {
	Enabled      bool   `koanf:"enabled"`
	ResendAPIKey string `koanf:"resend_api_key"`
	FromName     string `koanf:"from_name"`
	FromAddress  string `koanf:"from_address"`
}

// Load reads, unmarshals, validates, and defaults the configuration.
//
// Any failure here is fatal: a tool service with broken config has
// nothing useful to serve, so we log and exit rather than limp along.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("OPALTOOLS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "OPALTOOLS_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry naming stays
	// consistent regardless of what the env provides.
	mainConfig.Observability.ServiceName = "opal-custom-tools"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
