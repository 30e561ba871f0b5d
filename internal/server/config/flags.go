package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/technotes/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          gRPC bind address (e.g., ":50051")
//	-w string          HTTP bind address (e.g., ":8080")
//	-b string          storage backend: postgres | sqlite
//	-d string          database DSN
//	-k int             bcrypt cost
//	-n int             note list enrichment concurrency
//	-l string          log format: json | text | zap
//	-t int             shutdown timeout, seconds
//	-kafka string      comma-separated Kafka brokers
//	-topic string      Kafka topic for change events
//	-empty-list-ok     list empty collections as success
//
// os.Args is filtered through flagx.FilterArgs first so -c/-config and -env,
// handled by the other layers, do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-w", "-b", "-d", "-k", "-n", "-l", "-t", "-kafka", "-topic", "-empty-list-ok",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.EnrichConcurrency, "n", config.EnrichConcurrency, "note list enrichment concurrency")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|text|zap)")
	fs.BoolVar(&config.EmptyListOK, "empty-list-ok", config.EmptyListOK, "return empty lists instead of not found")
	fs.StringVar(&config.KafkaTopic, "topic", config.KafkaTopic, "kafka topic for change events")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	kafkaBrokers := fs.String("kafka", strings.Join(config.KafkaBrokers, ","), "kafka brokers, comma separated")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	config.KafkaBrokers = splitList(*kafkaBrokers)
}
