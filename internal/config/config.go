package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. BOOKMARKS_DB_PATH.
const EnvPrefix = "BOOKMARKS"

// Config holds application configuration
type Config struct {
	DBPath    string `mapstructure:"db_path"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// Indent is used when writing JSON documents; empty means compact.
	Indent string `mapstructure:"indent"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DBPath:    getDefaultDBPath(),
		LogLevel:  "warn",
		LogFormat: "console",
		Indent:    "  ",
	}
}

// WithDBPath sets a custom database path
func (c *Config) WithDBPath(path string) *Config {
	c.DBPath = path
	return c
}

// WithLogLevel sets the log level
func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

// Load reads configuration from cfgFile, or from config.yaml in the
// default directory when cfgFile is empty, then applies BOOKMARKS_*
// environment overrides. A missing default file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	defaults := NewConfig()
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("indent", defaults.Indent)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(getDefaultDir())
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func getDefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".bookmarks")
}

func getDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "bookmarks.db"
	}
	return filepath.Join(homeDir, ".bookmarks", "bookmarks.db")
}
