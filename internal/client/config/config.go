package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configDirName  = ".technotes"
	envPrefix      = "TECHNOTES"

	KeyServer  = "server"
	KeyTimeout = "timeout"

	defaultServer  = "127.0.0.1:50051"
	defaultTimeout = 5 * time.Second
)

// Config holds runtime settings for the technotes CLI.
type Config struct {
	ServerEndpointAddr string
	Timeout            time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = defaultServer
	c.Timeout = defaultTimeout
}

// DefaultConfigDir returns $HOME/.technotes, or "" if the home directory
// cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName)
}

// Load builds a Config from defaults, the YAML config file, TECHNOTES_*
// environment variables and flags, later sources winning. configFile
// overrides the default location; a missing default file is not an error.
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyServer, defaultServer)
	v.SetDefault(KeyTimeout, defaultTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyServer, KeyTimeout} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{
		ServerEndpointAddr: v.GetString(KeyServer),
		Timeout:            v.GetDuration(KeyTimeout),
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout %q", v.GetString(KeyTimeout))
	}
	return cfg, nil
}
