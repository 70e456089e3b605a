package configs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// NotConfiguredMessage is the fixed remediation text surfaced when a tool is
// invoked without usable credentials.
const NotConfiguredMessage = "Intervals.icu credentials not configured. " +
	"Run 'intervals-mcp-auth' to set up authentication."

// Athlete IDs look like "i123456"; the bare numeric form is also accepted.
var athleteIDPattern = regexp.MustCompile(`^i?[0-9]+$`)

// FileConfig defines the structure of the YAML credentials file written by
// intervals-mcp-auth.
type FileConfig struct {
	APIKey    string `yaml:"api_key"`
	AthleteID string `yaml:"athlete_id"`
}

// Config holds the final application configuration, merged from the YAML
// credentials file and environment variables. Environment variables carry the
// prefix "ICU_" and override file settings.
type Config struct {
	// Config file path (loaded first from env so the file is relocatable).
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Credentials, from file or ICU_API_KEY / ICU_ATHLETE_ID.
	APIKey    string `envconfig:"API_KEY"`
	AthleteID string `envconfig:"ATHLETE_ID"`

	BaseURL           string        `envconfig:"BASE_URL" default:"https://intervals.icu/api/v1"`
	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminAddr         string        `envconfig:"ADMIN_ADDR" default:":8081"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Log destination for the stdio transport, where stdout belongs to the
	// protocol and stderr may be captured by the host.
	LogFile string `envconfig:"LOG_FILE" default:"/tmp/intervals-mcp.log"`
}

// DefaultConfigPath returns the standard location of the credentials file.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "intervals-mcp", "config.yaml")
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// ValidateCredentials reports whether the config carries credentials of a
// plausible shape. Whether the key actually authenticates is the API's call.
func (c *Config) ValidateCredentials() bool {
	if strings.TrimSpace(c.APIKey) == "" {
		return false
	}
	return athleteIDPattern.MatchString(strings.TrimSpace(c.AthleteID))
}

// Load loads configuration first from environment variables (primarily to get
// the config file path), then from the YAML credentials file, and finally
// processes the environment again so env vars override file values.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("icu", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process initial environment variables: %w", err)
	}

	path := cfg.ConfigFilePath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileCfg FileConfig
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", path, err)
			}
			cfg.APIKey = fileCfg.APIKey
			cfg.AthleteID = fileCfg.AthleteID
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// The default file is optional; env-only setups are fine.
		default:
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	// Process environment variables again so they win over file credentials.
	if err := envconfig.Process("icu", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}
	return &cfg, nil
}

type ctxKey struct{}

// NewContext returns a context carrying the per-call config resolved by the
// credential middleware.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts the config placed by NewContext.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(ctxKey{}).(*Config)
	return cfg, ok
}
