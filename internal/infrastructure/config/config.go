package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// FileEnv names the environment variable pointing at a config file.
const FileEnv = "MATHD_CONFIG"

// MaxFactorialLimit bounds the configurable factorial ceiling.
const MaxFactorialLimit = 20000

// Transports the server can speak.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit" split_words:"true"`
	Math      MathConfig      `yaml:"math" toml:"math"`
}

// ServerConfig holds transport configuration.
type ServerConfig struct {
	Port            string   `envconfig:"PORT" yaml:"port" toml:"port"`
	Host            string   `envconfig:"HOST" yaml:"host" toml:"host"`
	Transport       string   `envconfig:"MATHD_TRANSPORT" yaml:"transport" toml:"transport"`
	ShutdownSeconds int      `envconfig:"SHUTDOWN_SECONDS" yaml:"shutdown_seconds" toml:"shutdown_seconds"`
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" yaml:"cors_origins" toml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" yaml:"rps" toml:"rps"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" yaml:"enabled" toml:"enabled"`
}

// MathConfig holds limits applied by the math provider.
type MathConfig struct {
	FactorialLimit int `envconfig:"MATH_FACTORIAL_MAX" yaml:"factorial_limit" toml:"factorial_limit"`
}

// Addr returns the host:port the HTTP transport listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load builds configuration from defaults, an optional config file, an
// optional .env file and environment variables, later sources winning.
// An empty path falls back to $MATHD_CONFIG.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv(FileEnv)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns the defaults on error.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadDotEnv exports the variables of file into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}

// loadFile overlays a YAML or TOML file, chosen by extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file type %q", ext)
	}
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}

	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport %q (want %s or %s)", c.Server.Transport, TransportStdio, TransportHTTP)
	}

	if c.Server.ShutdownSeconds < 0 {
		return fmt.Errorf("shutdown_seconds must not be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive rps and burst")
	}

	if c.Math.FactorialLimit < 1 || c.Math.FactorialLimit > MaxFactorialLimit {
		return fmt.Errorf("factorial limit must be between 1 and %d, got %d", MaxFactorialLimit, c.Math.FactorialLimit)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			Transport:       TransportStdio,
			ShutdownSeconds: 10,
			CORSOrigins:     []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Math: MathConfig{
			FactorialLimit: 170,
		},
	}
}
