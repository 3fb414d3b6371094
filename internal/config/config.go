// Package config provides Viper-based hierarchical configuration: defaults,
// an optional YAML config file, and CASA_-prefixed environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		// File is the path of the YAML ledger document.
		File string `mapstructure:"file" yaml:"file"`
		// Profile is the default profile id commands act on.
		Profile string `mapstructure:"profile" yaml:"profile"`
	} `mapstructure:"ledger" yaml:"ledger"`
}

// InitializeConfig loads the configuration with hierarchical precedence:
// explicit env vars beat the config file, which beats the defaults.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.casa-ledger")
	v.AddConfigPath(".casa-ledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not take the CLI down; defaults and
			// env vars still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.file", defaultLedgerFile())
	v.SetDefault("ledger.profile", "default")
}

func defaultLedgerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ledger.yaml"
	}
	return filepath.Join(home, ".casa-ledger", "ledger.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Ledger.File == "" {
		return fmt.Errorf("ledger.file must not be empty")
	}
	if config.Ledger.Profile == "" {
		return fmt.Errorf("ledger.profile must not be empty")
	}
	return nil
}
