package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/technotes/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	envGRPCAddr          = "TECHNOTES_GRPC_ADDR"
	envHTTPAddr          = "TECHNOTES_HTTP_ADDR"
	envStorage           = "TECHNOTES_STORAGE"
	envDatabaseDSN       = "TECHNOTES_DATABASE_DSN"
	envBcryptCost        = "TECHNOTES_BCRYPT_COST"
	envEmptyListOK       = "TECHNOTES_EMPTY_LIST_OK"
	envEnrichConcurrency = "TECHNOTES_ENRICH_CONCURRENCY"
	envLogFormat         = "TECHNOTES_LOG_FORMAT"
	envKafkaBrokers      = "TECHNOTES_KAFKA_BROKERS"
	envKafkaTopic        = "TECHNOTES_KAFKA_TOPIC"
	envShutdownTimeout   = "TECHNOTES_SHUTDOWN_TIMEOUT"
)

// parseEnv overlays config with TECHNOTES_* environment variables.
//
// A dotenv file is loaded first: the path given by -env, or ./.env when it
// exists. godotenv never overrides variables already set in the process
// environment. A missing default .env is not an error; a missing explicit
// -env file or a malformed value panics, like the JSON and flag layers.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(envGRPCAddr); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := os.LookupEnv(envHTTPAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envStorage); ok {
		config.StorageBackend = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envBcryptCost); ok {
		config.BcryptCost = mustAtoi(envBcryptCost, v)
	}
	if v, ok := os.LookupEnv(envEmptyListOK); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(envEmptyListOK + ": " + err.Error())
		}
		config.EmptyListOK = b
	}
	if v, ok := os.LookupEnv(envEnrichConcurrency); ok {
		config.EnrichConcurrency = mustAtoi(envEnrichConcurrency, v)
	}
	if v, ok := os.LookupEnv(envLogFormat); ok {
		config.LogFormat = v
	}
	if v, ok := os.LookupEnv(envKafkaBrokers); ok {
		config.KafkaBrokers = splitList(v)
	}
	if v, ok := os.LookupEnv(envKafkaTopic); ok {
		config.KafkaTopic = v
	}
	if v, ok := os.LookupEnv(envShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(envShutdownTimeout + ": " + err.Error())
		}
		config.ShutdownTimeout = d
	}
}

func mustAtoi(name, v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return n
}

// splitList turns "a:9092, b:9092" into ["a:9092" "b:9092"]; blanks are dropped.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
