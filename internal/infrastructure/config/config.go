package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
	Desktop     DesktopConfig
	Compression CompressionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Output      string `envconfig:"LOG_OUTPUT" default:"stdout"`
}

// RateLimitConfig holds per-IP HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds window session and site configuration.
type DesktopConfig struct {
	SiteTitle       string   `envconfig:"SITE_TITLE" default:"monty.exe"`
	SiteURL         string   `envconfig:"SITE_URL" default:"https://monty.ga"`
	CatalogDir      string   `envconfig:"CATALOG_DIR" default:""`
	IconsDir        string   `envconfig:"ICONS_DIR" default:"./public/icons"`
	StartupPrograms []string `envconfig:"STARTUP_PROGRAMS" default:"hello-world"`
	MaxMessageBytes int      `envconfig:"WS_MAX_MESSAGE_BYTES" default:"16384"`
	EventsPerSecond int      `envconfig:"WS_EVENTS_PER_SECOND" default:"120"`
	EventBurst      int      `envconfig:"WS_EVENT_BURST" default:"240"`
}

// CompressionConfig holds response compression configuration.
type CompressionConfig struct {
	Enabled bool `envconfig:"GZIP_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Output:      "stdout",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			SiteTitle:       "monty.exe",
			SiteURL:         "https://monty.ga",
			IconsDir:        "./public/icons",
			StartupPrograms: []string{"hello-world"},
			MaxMessageBytes: 16384,
			EventsPerSecond: 120,
			EventBurst:      240,
		},
		Compression: CompressionConfig{
			Enabled: true,
		},
	}
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
