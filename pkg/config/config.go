package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type AppConfig struct {
	Port        string `toml:"port"`
	DataFile    string `toml:"data_file"`
	StaticDir   string `toml:"static_dir"`
	Environment string `toml:"environment"`

	RateLimitEnabled bool                       `toml:"rate_limit_enabled"`
	RateLimitConfigs map[string]RateLimitConfig `toml:"rate_limits"`

	EnforceHTTPS bool `toml:"enforce_https"`

	LokiURL   string          `toml:"loki_url"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type RateLimitConfig struct {
	Requests int           `toml:"requests"`
	Window   time.Duration `toml:"window"`
}

type TelemetryConfig struct {
	ServiceName    string `toml:"service_name"`
	ServiceVersion string `toml:"service_version"`
	MetricsPort    string `toml:"metrics_port"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:        "3000",
		DataFile:    "todos.json",
		StaticDir:   "public",
		Environment: "development",

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"GET /api/todos": {
				Requests: 300,
				Window:   time.Minute,
			},
			"POST /api/todos": {
				Requests: 60,
				Window:   time.Minute,
			},
			"/api/todos/:id": {
				Requests: 120,
				Window:   time.Minute,
			},
			"default": {
				Requests: 600,
				Window:   time.Minute,
			},
		},

		EnforceHTTPS: false,

		Telemetry: TelemetryConfig{
			ServiceName:    "jsontodos",
			ServiceVersion: "1.0.0",
			MetricsPort:    "9091",
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// TODOS_CONFIG (if any), then environment variables.
func Load() (*AppConfig, error) {
	config := GetDefaultConfig()

	if path := os.Getenv("TODOS_CONFIG"); path != "" {
		if err := LoadFile(config, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFile overlays the keys present in a TOML file onto config.
func LoadFile(config *AppConfig, path string) error {
	if _, err := toml.DecodeFile(path, config); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	return nil
}

func applyEnv(config *AppConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		config.Port = v
	}

	if v := os.Getenv("TODOS_DATA_FILE"); v != "" {
		config.DataFile = v
	}

	if v := os.Getenv("TODOS_STATIC_DIR"); v != "" {
		config.StaticDir = v
	}

	if os.Getenv("GIN_MODE") == "release" {
		config.Environment = "production"
		config.EnforceHTTPS = true
	}

	if v := os.Getenv("ENFORCE_HTTPS"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ENFORCE_HTTPS %q: %w", v, err)
		}
		config.EnforceHTTPS = enabled
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		config.RateLimitEnabled = enabled
	}

	if v, ok := os.LookupEnv("METRICS_PORT"); ok {
		config.Telemetry.MetricsPort = v
	}

	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		config.Telemetry.OTLPEndpoint = v
	}

	if v := os.Getenv("LOKI_URL"); v != "" {
		config.LokiURL = v
	}

	return nil
}
