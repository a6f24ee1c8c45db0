package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Development fallbacks. Load refuses both.
const (
	DevSessionSecret = "flood-friend-secret-key-2024"
	DevAdminPassword = "admin123"
)

// MinSessionSecretLength is the minimum accepted length of SESSION_SECRET in production.
const MinSessionSecretLength = 32

// knownWeakSecrets are published values that must never sign production tokens.
var knownWeakSecrets = []string{
	DevSessionSecret,
	"change-me",
	"dev-secret-change-me",
}

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	GRPC     GRPCConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Log      LogConfig

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"floodfriend.db"` // SQLite database file path or DSN
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `env:"GRPC_ADDRESS" envDefault:":50051"`
}

// HTTPConfig contains the ops endpoint settings (health and metrics).
type HTTPConfig struct {
	Address string `env:"HTTP_ADDRESS" envDefault:":8080"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@site.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	LoginRate     float64       `env:"LOGIN_RATE" envDefault:"0.5"` // attempts per second per username; <= 0 disables
	LoginBurst    int           `env:"LOGIN_BURST" envDefault:"5"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or console
	Path   string `env:"LOG_PATH"`                    // optional rotated log file
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, errors.New("SESSION_TTL must be positive")
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.Log.Format)
	}
	return cfg, nil
}

// Load loads configuration from environment variables. SESSION_SECRET and
// ADMIN_PASSWORD have no defaults here; use Load in production.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is not set; required for production")
	}
	if len(cfg.Auth.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate one with: openssl rand -base64 32", MinSessionSecretLength, len(cfg.Auth.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if cfg.Auth.SessionSecret == weak {
			return nil, errors.New("SESSION_SECRET is a known default value and must not be used")
		}
	}
	if cfg.Auth.AdminPassword == "" {
		return nil, errors.New("ADMIN_PASSWORD environment variable is not set; required for production")
	}
	if cfg.Auth.AdminPassword == DevAdminPassword {
		return nil, errors.New("ADMIN_PASSWORD is a known default value and must not be used")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to the well-known development
// secret and admin password when they are unset. It reports which ones were
// defaulted so the caller can warn.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, []string, error) {
	cfg, err := parse()
	if err != nil {
		return nil, nil, err
	}
	var defaulted []string
	if cfg.Auth.SessionSecret == "" {
		cfg.Auth.SessionSecret = DevSessionSecret
		defaulted = append(defaulted, "SESSION_SECRET")
	}
	if cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = DevAdminPassword
		defaulted = append(defaulted, "ADMIN_PASSWORD")
	}
	return cfg, defaulted, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, HTTP: %s, SessionTTL: %s, Log: %s/%s, Auth: *** (masked) ***}",
		c.Database.Path, c.GRPC.Address, c.HTTP.Address, c.Auth.SessionTTL, c.Log.Level, c.Log.Format)
}
