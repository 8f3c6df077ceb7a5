// Package config defines the trialcheck CLI settings and their validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config keys as they appear in config.yaml.
const (
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyOutput    = "output"
)

// Supported values.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the settings trialcheck reads from config.yaml.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" validate:"required,oneof=text json"`
	Output    string `mapstructure:"output" yaml:"output" validate:"required,oneof=text json"`
}

// Config validation errors.
var (
	ErrLogLevelInvalid  = errors.New("log_level must be one of debug, info, warn, error")
	ErrLogFormatInvalid = errors.New("log_format must be text or json")
	ErrOutputInvalid    = errors.New("output must be text or json")
)

// fieldErrors maps a struct field to the sentinel reported for it.
var fieldErrors = map[string]error{
	"LogLevel":  ErrLogLevelInvalid,
	"LogFormat": ErrLogFormatInvalid,
	"Output":    ErrOutputInvalid,
}

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration written to a fresh config.yaml.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: LogFormatText,
		Output:    OutputText,
	}
}

// Validate checks the Config against its struct tags. The first failing
// field is reported as its sentinel, wrapped with the offending value.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}
	fe := verrs[0]
	sentinel, ok := fieldErrors[fe.StructField()]
	if !ok {
		return fmt.Errorf("validate config: %w", err)
	}
	return fmt.Errorf("%w (got %q)", sentinel, fmt.Sprint(fe.Value()))
}

// Normalize lower-cases enumerated values so "WARN" and "warn" are the same.
func (c Config) Normalize() Config {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	return c
}
