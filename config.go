package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/WillyV3/todobi/internal/store"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "TODOBI"
)

type Config struct {
	Store    StoreConfig `mapstructure:"store" toml:"store"`
	Log      LogConfig   `mapstructure:"log" toml:"log"`
	Timezone string      `mapstructure:"timezone" toml:"timezone"`
}

type StoreConfig struct {
	Kind string `mapstructure:"kind" toml:"kind"`
	Path string `mapstructure:"path" toml:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	// File receives log output while the TUI owns the terminal.
	File string `mapstructure:"file" toml:"file"`
}

func DefaultConfig() *Config {
	logFile := ".todobi.log"
	if home, err := os.UserHomeDir(); err == nil {
		logFile = filepath.Join(home, logFile)
	}
	return &Config{
		Store: StoreConfig{
			Kind: string(store.KindFile),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   logFile,
		},
		Timezone: "UTC",
	}
}

// defaultConfigDir returns $XDG_CONFIG_HOME/todobi or ~/.config/todobi.
func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "todobi")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "todobi")
	}
	return "."
}

func defaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), configName+"."+configType)
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("store.kind", d.Store.Kind)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("timezone", d.Timezone)
}

// LoadConfig reads defaults, then the config file, then TODOBI_* environment
// variables and finally any flags bound to v. An explicit path must exist;
// the default search locations may be empty.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(defaultConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch store.Kind(strings.ToLower(c.Store.Kind)) {
	case store.KindFile, store.KindSQLite, store.KindMemory:
	default:
		return fmt.Errorf("store.kind %q: want file, sqlite or memory", c.Store.Kind)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the calendar used for deadline checks.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WriteConfig writes cfg as TOML to path, creating parent directories.
func WriteConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
