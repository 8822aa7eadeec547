package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const defaultSecurePort = "443"

// Config holds the process-wide settings. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	// Endpoint is the Geyser gRPC endpoint as host[:port]. When no port is
	// present the secure port 443 is appended.
	Endpoint string

	// Token is the optional x-token access credential. Empty means the
	// endpoint requires no authentication metadata.
	Token string

	// MetricsAddr is the listen address of the ops HTTP endpoint
	// (/metrics, /healthz). Empty disables the listener.
	MetricsAddr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadConfig reads configuration from the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("endpoint", "grpc.solanavibestation.com:443")
	v.SetDefault("access_token", "")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("geyser")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{
		Endpoint:    strings.TrimSpace(v.GetString("endpoint")),
		Token:       v.GetString("access_token"),
		MetricsAddr: v.GetString("metrics_addr"),
		LogLevel:    v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Normalize the endpoint so every dial target carries an explicit port.
	if !strings.Contains(cfg.Endpoint, ":") {
		cfg.Endpoint += ":" + defaultSecurePort
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config: GEYSER_ENDPOINT is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown GEYSER_LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level onto slog's leveler.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
