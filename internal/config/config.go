package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration (live session store)
	Redis RedisConfig

	// Session configuration
	Session SessionConfig

	// AI text service configuration
	AI AIConfig

	// Rate limiting for AI endpoints
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"4000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
	AllowedOrigin   string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string        `env:"DATABASE_URL"`
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         string        `env:"DB_PORT" envDefault:"5432"`
	User         string        `env:"DB_USER" envDefault:"postgres"`
	Password     string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name         string        `env:"DB_NAME" envDefault:"content_workflow"`
	SSLMode      string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`

	// ConnectAttempts bounds startup pings while the server comes up
	ConnectAttempts int `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
}

// RedisConfig holds the session cache connection settings
type RedisConfig struct {
	URL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix string `env:"REDIS_SESSION_PREFIX" envDefault:"session:"`
}

// SessionConfig holds login session settings
type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`
}

// AIConfig holds the OpenAI-compatible text service settings
type AIConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	BaseURL string        `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model   string        `env:"AI_MODEL" envDefault:"gemini-3-flash-preview"`
	Timeout time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`
}

// RateLimitConfig holds per-caller limits for the AI endpoints
type RateLimitConfig struct {
	Enabled bool    `env:"AI_RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS     float64 `env:"AI_RATE_LIMIT_RPS" envDefault:"0.5"`
	Burst   int     `env:"AI_RATE_LIMIT_BURST" envDefault:"5"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("AI_RATE_LIMIT_RPS and AI_RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	return nil
}

// AIEnabled returns true if an API key for the text service is configured
func (c *AIConfig) AIEnabled() bool {
	return c.APIKey != ""
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
