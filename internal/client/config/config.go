package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the favkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the favkeeper HTTP API.
//   - RequestTimeout: upper bound for a single API call.
//   - TokenFile: where the bearer token from login is kept.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenFile      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = DefaultTokenFile()
}

// DefaultTokenFile returns <UserConfigDir>/favkeeper/token, or a file in the
// working directory when the user config dir is unknown.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".favkeeper-token"
	}
	return filepath.Join(dir, "favkeeper", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the file at path when path is not empty. Command-line flags are applied by
// the caller on top of the result.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
