// Package config loads runtime configuration for the technotes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. YAML file: --config, or $HOME/.technotes/config.yaml when present.
//  3. Environment variables TECHNOTES_SERVER and TECHNOTES_TIMEOUT.
//  4. Command-line flags --server and --timeout, which override earlier values.
//
// Example file:
//
//	server: 127.0.0.1:50051
//	timeout: 5s
package config
