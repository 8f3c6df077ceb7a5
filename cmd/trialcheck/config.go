// Config loading for the trialcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/p829911/optuna/internal/config"
	"github.com/p829911/optuna/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"
)

const defaultConfigHeader = "# trialcheck configuration\n" +
	"# log_level: debug | info | warn | error\n" +
	"# log_format: text | json\n" +
	"# output: text | json\n\n"

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (config.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return config.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return config.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	def := config.Default()
	v := viper.New()
	v.SetDefault(config.KeyLogLevel, def.LogLevel)
	v.SetDefault(config.KeyLogFormat, def.LogFormat)
	v.SetDefault(config.KeyOutput, def.Output)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile writes config.Default() to config.yaml if the file
// does not exist yet.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0o644)
}
