package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/favkeeper/internal/flagx"
	"github.com/dmitrijs2005/favkeeper/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// strings such as "1h" (and integer nanoseconds in JSON). Zero values leave
// the current setting untouched.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" toml:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn" toml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" toml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost" toml:"bcrypt_cost"`
	FavouritesLimit             int            `json:"favourites_limit" toml:"favourites_limit"`
	LogFormat                   string         `json:"log_format" toml:"log_format"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
	HealthCheckInterval         timex.Duration `json:"health_check_interval" toml:"health_check_interval"`
}

// parseFile loads the file named by -c/-config, if any. Files ending in
// .toml are decoded as TOML, everything else as JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fc := &FileConfig{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	if fc.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = fc.EndpointAddrHTTP
	}
	if fc.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = fc.EndpointAddrGRPC
	}
	if fc.DatabaseDSN != "" {
		config.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		config.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.FavouritesLimit != 0 {
		config.FavouritesLimit = fc.FavouritesLimit
	}
	if fc.LogFormat != "" {
		config.LogFormat = fc.LogFormat
	}
	if fc.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.HealthCheckInterval.Duration != 0 {
		config.HealthCheckInterval = fc.HealthCheckInterval.Duration
	}
}
