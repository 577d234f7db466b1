// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces environment variables; nesting uses double
// underscores, e.g. PLACEMENTHUB_SERVER__PORT.
const envPrefix = "PLACEMENTHUB_"

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Log           LogConfig           `koanf:"log"`
	CORS          CORSConfig          `koanf:"cors"`
	Session       SessionConfig       `koanf:"session"`
	Login         LoginConfig         `koanf:"login"`
	Notifications NotificationsConfig `koanf:"notifications"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig contains PostgreSQL settings.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout"`
	ConnectAttempts int           `koanf:"connect_attempts"`
	Migrate         bool          `koanf:"migrate"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// SessionConfig contains session cookie and login behavior settings.
type SessionConfig struct {
	CookieName   string        `koanf:"cookie_name"`
	CookieDomain string        `koanf:"cookie_domain"`
	CookieSecure bool          `koanf:"cookie_secure"`
	CookieMaxAge time.Duration `koanf:"cookie_max_age"`
	Secret       string        `koanf:"secret"`
	// LoginDelay is the simulated credential round-trip applied by the
	// session store. Zero disables it.
	LoginDelay time.Duration `koanf:"login_delay"`
	// MockDirectory selects the built-in three-account fixture directory
	// instead of the users table.
	MockDirectory bool `koanf:"mock_directory"`
}

// LoginConfig contains login endpoint throttling settings.
type LoginConfig struct {
	RatePerMinute int `koanf:"rate_per_minute"`
	RateBurst     int `koanf:"rate_burst"`
}

// NotificationsConfig contains the in-app notification delivery settings.
type NotificationsConfig struct {
	Enabled bool                `koanf:"enabled"`
	Worker  WorkerConfig        `koanf:"worker"`
	Retry   NotifyRetryConfig   `koanf:"retry"`
}

// WorkerConfig tunes the notification delivery worker.
type WorkerConfig struct {
	BatchSize    int           `koanf:"batch_size"`
	PollInterval time.Duration `koanf:"poll_interval"`
	NumWorkers   int           `koanf:"num_workers"`
}

// NotifyRetryConfig tunes delivery retries.
type NotifyRetryConfig struct {
	MaxAttempts       int           `koanf:"max_attempts"`
	InitialBackoff    time.Duration `koanf:"initial_backoff"`
	MaxBackoff        time.Duration `koanf:"max_backoff"`
	BackoffMultiplier float64       `koanf:"backoff_multiplier"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 5,
			Migrate:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Session: SessionConfig{
			CookieName:    "pms_user",
			CookieMaxAge:  30 * 24 * time.Hour,
			LoginDelay:    time.Second,
			MockDirectory: true,
		},
		Login: LoginConfig{
			RatePerMinute: 10,
			RateBurst:     5,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Worker: WorkerConfig{
				BatchSize:    100,
				PollInterval: 5 * time.Second,
				NumWorkers:   2,
			},
			Retry: NotifyRetryConfig{
				MaxAttempts:       3,
				InitialBackoff:    time.Second,
				MaxBackoff:        5 * time.Minute,
				BackoffMultiplier: 2.0,
			},
		},
	}
}

// Load reads configuration from the optional YAML file at path, then from
// the environment, on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envToKey maps PLACEMENTHUB_SERVER__PORT to server.port. Single underscores
// stay part of the key name.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("session.secret is required"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, text", c.Log.Format))
	}

	return errors.Join(errs...)
}
