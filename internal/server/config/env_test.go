package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Chdir(t.TempDir())

	t.Setenv(envGRPCAddr, ":6000")
	t.Setenv(envHTTPAddr, ":6001")
	t.Setenv(envStorage, "postgres")
	t.Setenv(envDatabaseDSN, "postgres://x")
	t.Setenv(envBcryptCost, "12")
	t.Setenv(envEmptyListOK, "true")
	t.Setenv(envEnrichConcurrency, "3")
	t.Setenv(envLogFormat, "zap")
	t.Setenv(envKafkaBrokers, "a:9092, b:9092,")
	t.Setenv(envKafkaTopic, "t")
	t.Setenv(envShutdownTimeout, "2s")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, ":6001", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.EmptyListOK)
	assert.Equal(t, 3, cfg.EnrichConcurrency)
	assert.Equal(t, "zap", cfg.LogFormat)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "t", cfg.KafkaTopic)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("TECHNOTES_DATABASE_DSN=file:from-dotenv.db\n"), 0o600))
	t.Setenv(envDatabaseDSN, "")
	require.NoError(t, os.Unsetenv(envDatabaseDSN))

	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	parseEnv(cfg)
	t.Cleanup(func() { _ = os.Unsetenv(envDatabaseDSN) })

	assert.Equal(t, "file:from-dotenv.db", cfg.DatabaseDSN)
}

func TestParseEnv_MissingExplicitFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Chdir(t.TempDir())

	t.Setenv(envBcryptCost, "ten")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
