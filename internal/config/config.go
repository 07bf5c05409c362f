// ABOUTME: Configuration loading and parsing for taskdeck
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTokenTTL is the token validity window when none is configured.
const DefaultTokenTTL = time.Hour

// Config represents the complete taskdeck configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration.
// Driver selects the store engine: "sqlite" (default) uses Path,
// "postgres" uses DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TokenTTLRaw string `yaml:"token_ttl"`
}

// CacheConfig holds the optional Redis task-list cache configuration
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TTLRaw string `yaml:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	switch c.Database.Driver {
	case "", "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be \"sqlite\" or \"postgres\", got %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("cache.addr is required when cache is enabled")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	cfg.Auth.TokenTTL = DefaultTokenTTL
	if cfg.Auth.TokenTTLRaw != "" {
		cfg.Auth.TokenTTL, err = time.ParseDuration(cfg.Auth.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing token_ttl %q: %w", cfg.Auth.TokenTTLRaw, err)
		}
	}

	if cfg.Cache.TTLRaw != "" {
		cfg.Cache.TTL, err = time.ParseDuration(cfg.Cache.TTLRaw)
		if err != nil {
			return fmt.Errorf("parsing cache ttl %q: %w", cfg.Cache.TTLRaw, err)
		}
	}

	return nil
}
