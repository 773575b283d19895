package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/favkeeper/internal/timex"
)

// FileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so timeouts can be written as "3s" or as nanoseconds.
type FileConfig struct {
	ServerURL      string         `json:"server_url" toml:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout" toml:"request_timeout"`
	TokenFile      string         `json:"token_file" toml:"token_file"`
}

// parseFile overlays cfg with the non-empty values of a JSON or TOML file.
// The format follows the extension; anything other than .toml is JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.TokenFile != "" {
		cfg.TokenFile = fc.TokenFile
	}
	return nil
}
