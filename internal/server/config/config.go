// Package config handles configuration for the server component: defaults,
// .env and environment variables, an optional JSON or TOML file, and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/favkeeper/internal/common"
	"github.com/dmitrijs2005/favkeeper/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the favkeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health service; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required unless UseMemoryStore is set.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - AccessTokenValidityDuration: bearer token lifetime.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - FavouritesLimit: maximum number of distinct favourites per user.
//   - LogFormat: one of "json", "text", "zap".
//   - ShutdownTimeout: grace period for in-flight HTTP requests on stop.
//   - HealthCheckInterval: how often the health service pings the database.
//   - UseMemoryStore: keep users in process memory instead of PostgreSQL.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	FavouritesLimit             int
	LogFormat                   string
	ShutdownTimeout             time.Duration
	HealthCheckInterval         time.Duration
	UseMemoryStore              bool
}

var (
	ErrMissingDatabaseDSN = errors.New("database connection string is not set")
	ErrMissingSecretKey   = errors.New("token signing secret is not set")
	ErrInvalidValue       = errors.New("invalid config value")
)

// LoadDefaults populates Config with defaults. DatabaseDSN and SecretKey
// have none and must be supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ""
	c.AccessTokenValidityDuration = time.Hour
	c.BcryptCost = 10
	c.FavouritesLimit = common.DefaultFavouritesLimit
	c.LogFormat = logging.FormatJSON
	c.ShutdownTimeout = 5 * time.Second
	c.HealthCheckInterval = 10 * time.Second
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" && !c.UseMemoryStore {
		return ErrMissingDatabaseDSN
	}
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: token ttl must be positive, got %s", ErrInvalidValue, c.AccessTokenValidityDuration)
	}
	// Zero cost and limit fall back to the service defaults.
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("%w: bcrypt cost must be between %d and %d, got %d", ErrInvalidValue, bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.FavouritesLimit < 0 {
		return fmt.Errorf("%w: favourites limit must not be negative, got %d", ErrInvalidValue, c.FavouritesLimit)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from .env and the environment, an optional config file and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
