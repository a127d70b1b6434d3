// Package config loads the settings of the mimewrap command. Defaults are
// applied first, then an optional YAML file, then MIMEWRAP_* environment
// variables. Command-line flags are applied last by the command itself.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zostay/mimewrap/message/header"
	"github.com/zostay/mimewrap/message/header/field"
)

// Line break names accepted by output.line_break.
const (
	BreakCRLF = "crlf"
	BreakLF   = "lf"
)

// Config holds the complete application configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Sidecar   SidecarConfig   `yaml:"sidecar"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OutputConfig controls the document that is written.
type OutputConfig struct {
	Extension     string `yaml:"extension"`
	LineBreak     string `yaml:"line_break"`
	FoldLength    int    `yaml:"fold_length"`
	HeaderCharset string `yaml:"header_charset"`
}

// SidecarConfig controls sidecar discovery.
type SidecarConfig struct {
	Extension string `yaml:"extension"`
}

// NormalizeConfig turns on the optional header value rewrites.
type NormalizeConfig struct {
	Date      bool `yaml:"date"`
	Addresses bool `yaml:"addresses"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load returns the defaults overridden by environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables. Returns an error if the
// specified file path does not exist.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets sensible default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.Output.Extension = ".eml"
	c.Output.LineBreak = BreakCRLF
	c.Output.FoldLength = field.DefaultPreferredFoldLength
	c.Output.HeaderCharset = field.DefaultCharset
	c.Sidecar.Extension = ".headers"
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() error {
	if v := os.Getenv("MIMEWRAP_OUTPUT_EXTENSION"); v != "" {
		c.Output.Extension = v
	}
	if v := os.Getenv("MIMEWRAP_LINE_BREAK"); v != "" {
		c.Output.LineBreak = strings.ToLower(v)
	}
	if v := os.Getenv("MIMEWRAP_FOLD_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MIMEWRAP_FOLD_LENGTH: %w", err)
		}
		c.Output.FoldLength = n
	}
	if v := os.Getenv("MIMEWRAP_HEADER_CHARSET"); v != "" {
		c.Output.HeaderCharset = v
	}

	if v := os.Getenv("MIMEWRAP_SIDECAR_EXTENSION"); v != "" {
		c.Sidecar.Extension = v
	}

	if v := os.Getenv("MIMEWRAP_NORMALIZE_DATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIMEWRAP_NORMALIZE_DATE: %w", err)
		}
		c.Normalize.Date = b
	}
	if v := os.Getenv("MIMEWRAP_NORMALIZE_ADDRESSES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIMEWRAP_NORMALIZE_ADDRESSES: %w", err)
		}
		c.Normalize.Addresses = b
	}

	if v := os.Getenv("MIMEWRAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	return nil
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.Output.Extension, ".") {
		errs = append(errs, fmt.Errorf("output.extension %q must start with a dot", c.Output.Extension))
	}
	if !strings.HasPrefix(c.Sidecar.Extension, ".") {
		errs = append(errs, fmt.Errorf("sidecar.extension %q must start with a dot", c.Sidecar.Extension))
	}

	switch c.Output.LineBreak {
	case BreakCRLF, BreakLF:
	default:
		errs = append(errs, fmt.Errorf("output.line_break %q must be %q or %q", c.Output.LineBreak, BreakCRLF, BreakLF))
	}

	if _, err := c.FoldEncoding(); err != nil {
		errs = append(errs, fmt.Errorf("output.fold_length %d: %w", c.Output.FoldLength, err))
	}

	if c.Output.HeaderCharset == "" {
		errs = append(errs, errors.New("output.header_charset must not be empty"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Break returns the configured line break.
func (c *Config) Break() header.Break {
	if c.Output.LineBreak == BreakLF {
		return header.LF
	}
	return header.CRLF
}

// FoldEncoding returns the header folding for the configured fold length. No
// line is ever allowed past the 998 octet limit.
func (c *Config) FoldEncoding() (*field.FoldEncoding, error) {
	return field.NewFoldEncoding(c.Output.FoldLength, field.DefaultForcedFoldLength)
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging.level %q is not one of debug, info, warn, or error", c.Logging.Level)
}
