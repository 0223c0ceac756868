// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Document Backends

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// minSecretBytes is the shortest JWT_SECRET accepted at startup.
const minSecretBytes = 32

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Session token signing
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Document storage
	Storage

	// Optional shared login throttle
	RedisURL         string        `env:"REDIS_URL"`
	LoginMaxFailures int           `env:"LOGIN_MAX_FAILURES" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT"      envDefault:"15m"`

	// Static assets and uploads
	PublicDir      string `env:"PUBLIC_DIR"       envDefault:"./public"`
	UploadDir      string `env:"UPLOAD_DIR"       envDefault:"./public/uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Cross-Origin Resource Sharing (comma separated; empty allows all in development)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Reverse proxies whose X-Forwarded-For / X-Real-IP are believed
	// (comma separated addresses or CIDR ranges; empty trusts nobody)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Storage selects where the document lives. Shared by the server and cmd/setup.
type Storage struct {
	DocumentBackend string `env:"DOCUMENT_BACKEND" envDefault:"file"`
	DataFile        string `env:"DATA_FILE"        envDefault:"./data/db.json"`
	DatabaseURL     string `env:"DATABASE_URL"`
	MigrationPath   string `env:"MIGRATION_PATH"   envDefault:"./data/migrations"`
}

// SetupConfig holds the provisioning inputs for cmd/setup.
type SetupConfig struct {
	AdminUsername string `env:"ADMIN_USERNAME,required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required,unset"`

	Storage
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadSetup parses the provisioning configuration.
func LoadSetup() (*SetupConfig, error) {
	cfg := &SetupConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil, errors.New("config: ADMIN_PASSWORD must not be blank")
	}

	if err := validateBackend(cfg.DocumentBackend, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretBytes {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minSecretBytes)
	}

	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}

	if c.MaxUploadBytes <= 0 {
		return errors.New("config: MAX_UPLOAD_BYTES must be positive")
	}

	for _, entry := range c.TrustedProxies {
		if _, err := parseProxy(entry); err != nil {
			return fmt.Errorf("config: TRUSTED_PROXIES entry %q: %w", entry, err)
		}
	}

	return validateBackend(c.DocumentBackend, c.DatabaseURL)
}

func validateBackend(backend, databaseURL string) error {
	switch backend {
	case BackendFile:
		return nil
	case BackendPostgres:
		if databaseURL == "" {
			return errors.New("config: DATABASE_URL is required when DOCUMENT_BACKEND=postgres")
		}
		return nil
	default:
		return fmt.Errorf("config: unknown DOCUMENT_BACKEND %q", backend)
	}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginAllowed reports whether a browser origin may call the API.
func (c *Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return c.IsDevelopment()
	}

	for _, allowed := range c.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ProxyTrusted reports whether addr is one of TRUSTED_PROXIES.
func (c *Config) ProxyTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, entry := range c.TrustedProxies {
		if prefix, err := parseProxy(entry); err == nil && prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// parseProxy accepts "10.0.0.0/8" or a bare address.
func parseProxy(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		return prefix.Masked(), err
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
