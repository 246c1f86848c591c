// Package config loads the application configuration from environment
// variables (prefix OVA) merged over an optional YAML file, and validates the
// result before the server starts.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Source modes.
const (
	ModeLocal    = "local"
	ModeOneDrive = "onedrive"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	FrontendDir     string        `yaml:"frontend_dir" envconfig:"FRONTEND_DIR"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SourceConfig selects and configures the table source backend.
type SourceConfig struct {
	Mode        string         `yaml:"mode" envconfig:"MODE" validate:"oneof=local onedrive"`
	VentasFile  string         `yaml:"ventas_file" envconfig:"VENTAS_FILE"`
	AlmacenFile string         `yaml:"almacen_file" envconfig:"ALMACEN_FILE"`
	OneDrive    OneDriveConfig `yaml:"onedrive" envconfig:"ONEDRIVE"`
}

// OneDriveConfig configures the Microsoft Graph backend. The three token
// fields feed the credential fallback chain in order: the persisted session
// cache, the long-lived refresh token, and the static access token.
type OneDriveConfig struct {
	ClientID      string        `yaml:"client_id" envconfig:"CLIENT_ID"`
	TenantID      string        `yaml:"tenant_id" envconfig:"TENANT_ID"`
	RefreshToken  string        `yaml:"refresh_token" envconfig:"REFRESH_TOKEN"`
	AccessToken   string        `yaml:"access_token" envconfig:"ACCESS_TOKEN"`
	TokenCache    string        `yaml:"token_cache" envconfig:"TOKEN_CACHE"`
	VentasItemID  string        `yaml:"ventas_item_id" envconfig:"VENTAS_ITEM_ID"`
	AlmacenItemID string        `yaml:"almacen_item_id" envconfig:"ALMACEN_ITEM_ID"`
	FileCacheTTL  time.Duration `yaml:"file_cache_ttl" envconfig:"FILE_CACHE_TTL"`
	TableCacheTTL time.Duration `yaml:"table_cache_ttl" envconfig:"TABLE_CACHE_TTL"`
}

// Load loads configuration from environment variables and the config file.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("OVA", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints plus the cross-field rules validator tags
// cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Source.Mode == ModeOneDrive {
		od := c.Source.OneDrive
		if od.VentasItemID == "" && od.AlmacenItemID == "" {
			return fmt.Errorf("onedrive mode requires at least one document item ID")
		}
		// A client ID is needed for both the session cache and the refresh
		// token strategies; a static token alone is a valid (if fragile) setup.
		if od.ClientID == "" && od.AccessToken == "" {
			return fmt.Errorf("onedrive mode requires a client ID or a static access token")
		}
	}

	return nil
}

// configFilePath returns the first config file that exists.
func configFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	if custom := os.Getenv("OVA_CONFIG_FILE"); custom != "" {
		locations = append([]string{custom}, locations...)
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8005,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			FrontendDir:     "frontend",
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Source: SourceConfig{
			Mode:        ModeLocal,
			VentasFile:  "CONTROL DE VENTAS OVA 2026 -.xlsx",
			AlmacenFile: "CONTROL DE ALMACÉN OVA 2026 -.xlsx",
			OneDrive: OneDriveConfig{
				TenantID:      "consumers",
				TokenCache:    "token_cache.json",
				FileCacheTTL:  2 * time.Minute,
				TableCacheTTL: 2 * time.Minute,
			},
		},
	}
}
