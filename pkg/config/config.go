// Package config loads mellow settings from a config file, the environment,
// and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/mellow/pkg/logging"
	"tableflip.dev/mellow/pkg/store"
)

// Config is the full application configuration.
type Config struct {
	Store store.Options   `mapstructure:",squash" json:"store"`
	Log   logging.Options `mapstructure:"log" json:"log"`
}

// Load reads configuration. When file is empty the .mellow.yaml file is
// searched for in $MELLOW_CONFIG_PATH, the working directory and $HOME; a
// missing file is not an error. Environment variables prefixed MELLOW_
// override file values.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("backend", string(store.BackendDiskv))
	v.SetDefault("path", "~/.mellow.db")
	v.SetDefault("sqlite.path", "~/.mellow.sqlite")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.prefix", "mellow:")
	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.table", "mellow_kv")
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.database", "mellow")
	v.SetDefault("mongo.collection", "kv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.mellow.log")

	v.SetEnvPrefix("MELLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".mellow") // .yaml is implicit
		if override := os.Getenv("MELLOW_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	backend, err := store.ParseBackend(string(cfg.Store.Backend))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Store.Backend = backend

	for _, p := range []*string{&cfg.Store.Path, &cfg.Store.SQLite.Path, &cfg.Log.File} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("config: expand %q: %w", *p, err)
		}
		*p = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
