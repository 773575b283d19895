// Package config loads runtime configuration for the favkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or TOML file passed to LoadConfig.
//  3. Environment variables and command-line flags, applied by the cli
//     package on top of the loaded Config.
//
// # File schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "5s",
//	  "token_file": "/home/alice/.config/favkeeper/token"
//	}
//
// The same keys are accepted in TOML.
package config
