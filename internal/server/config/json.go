package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/technotes/internal/flagx"
	"github.com/dmitrijs2005/technotes/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Pointer fields distinguish "absent" from zero values, so a partial file only
// overrides the keys it names. ShutdownTimeout accepts "5s" or nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	StorageBackend    *string         `json:"storage_backend"`
	DatabaseDSN       *string         `json:"database_dsn"`
	BcryptCost        *int            `json:"bcrypt_cost"`
	EmptyListOK       *bool           `json:"empty_list_ok"`
	EnrichConcurrency *int            `json:"enrich_concurrency"`
	LogFormat         *string         `json:"log_format"`
	KafkaBrokers      []string        `json:"kafka_brokers"`
	KafkaTopic        *string         `json:"kafka_topic"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing happens. If the file
// cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.KafkaTopic, c.KafkaTopic)
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.EmptyListOK != nil {
		config.EmptyListOK = *c.EmptyListOK
	}
	if c.EnrichConcurrency != nil {
		config.EnrichConcurrency = *c.EnrichConcurrency
	}
	if c.KafkaBrokers != nil {
		config.KafkaBrokers = c.KafkaBrokers
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
