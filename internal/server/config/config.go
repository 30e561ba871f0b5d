// Package config handles configuration for the server component,
// including defaults, environment (.env) overlay, JSON overlay, and
// command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
)

// Storage backends accepted in StorageBackend.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds runtime settings for the technotes server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses for the gRPC and REST endpoints.
//   - StorageBackend: "postgres" (pgx) or "sqlite" (modernc, file or in-memory).
//   - DatabaseDSN: DSN for the selected backend.
//   - BcryptCost: work factor for account secret hashing.
//   - EmptyListOK: when true, List on an empty collection succeeds with no items
//     instead of failing with a not-found error.
//   - EnrichConcurrency: max concurrent owner lookups when listing notes.
//   - LogFormat: "json", "text" (slog) or "zap".
//   - KafkaBrokers / KafkaTopic: change event sink; events are off when no brokers are set.
//   - ShutdownTimeout: grace period for the HTTP server on shutdown.
type Config struct {
	EndpointAddrGRPC  string
	EndpointAddrHTTP  string
	StorageBackend    string
	DatabaseDSN       string
	BcryptCost        int
	EmptyListOK       bool
	EnrichConcurrency int
	LogFormat         string
	KafkaBrokers      []string
	KafkaTopic        string
	ShutdownTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file with foreign keys enforced.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.StorageBackend = BackendSQLite
	c.DatabaseDSN = "file:technotes.db?_pragma=foreign_keys(1)"
	c.BcryptCost = common.DefaultBcryptCost
	c.EmptyListOK = false
	c.EnrichConcurrency = 8
	c.LogFormat = "json"
	c.KafkaBrokers = nil
	c.KafkaTopic = "technotes.events"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (optionally seeded from a .env file), an optional
// JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
