package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	Environment string `env:"APP_ENV" env-default:"development"`
	Port        string `env:"PORT" env-default:"3001"`

	DatabaseDriver string `env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabasePath   string `env:"DATABASE_PATH" env-default:"goals.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	LogQueries     bool   `env:"LOG_QUERIES" env-default:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" env-default:"true"`
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool `env:"ENFORCE_HTTPS" env-default:"false"`

	// ResponseCacheTTL of 0 disables the GET response cache.
	ResponseCacheTTL time.Duration `env:"RESPONSE_CACHE_TTL" env-default:"0s"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LokiURL   string `env:"LOKI_URL"`
	SentryDSN string `env:"SENTRY_DSN"`

	ServiceName    string `env:"SERVICE_NAME" env-default:"goalsapp"`
	ServiceVersion string `env:"SERVICE_VERSION" env-default:"1.0.0"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT"`
	MetricsPort    string `env:"METRICS_PORT" env-default:"9091"`
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:        "development",
		Port:               "3001",
		DatabaseDriver:     DriverSQLite,
		DatabasePath:       "goals.db",
		CORSAllowedOrigins: []string{"*"},
		RateLimitEnabled:   true,
		RateLimitConfigs:   defaultRateLimits(),
		EnforceHTTPS:       false,
		LogLevel:           "info",
		ServiceName:        "goalsapp",
		ServiceVersion:     "1.0.0",
		MetricsPort:        "9091",
	}
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := new(AppConfig)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	cfg.RateLimitConfigs = defaultRateLimits()

	if cfg.IsProduction() {
		cfg.EnforceHTTPS = true
	}

	return cfg, cfg.Validate()
}

func (c *AppConfig) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.New("DATABASE_DRIVER must be sqlite or postgres")
	}

	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func defaultRateLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		"GET /goals": {
			Requests: 120,
			Window:   time.Minute,
		},
		"POST /goals": {
			Requests: 30,
			Window:   time.Minute,
		},
		"POST /goals/:id/tasks": {
			Requests: 60,
			Window:   time.Minute,
		},
		"DELETE /goals/:id": {
			Requests: 20,
			Window:   time.Minute,
		},
		"default": {
			Requests: 100,
			Window:   time.Minute,
		},
	}
}
