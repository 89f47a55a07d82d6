// Package config loads qrdecode settings from a YAML file, QRDECODE_
// environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericlevine/qrdecode/qrcode"
)

// Config is the complete CLI configuration.
type Config struct {
	LogLevel  string        `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string        `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
	Verbose   bool          `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Scan      ScanConfig    `mapstructure:"scan" yaml:"scan" json:"scan"`
	Output    OutputConfig  `mapstructure:"output" yaml:"output" json:"output"`
	Metrics   MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// ScanConfig controls how images are read and decoded. Images larger
// than MaxDimension on either side are downscaled first; 0 keeps the
// original size.
type ScanConfig struct {
	Binarizer    string `mapstructure:"binarizer" yaml:"binarizer" json:"binarizer"`
	CharacterSet string `mapstructure:"character_set" yaml:"character_set" json:"character_set"`
	AlsoInverted bool   `mapstructure:"also_inverted" yaml:"also_inverted" json:"also_inverted"`
	Concurrency  int    `mapstructure:"concurrency" yaml:"concurrency" json:"concurrency"`
	MaxDimension int    `mapstructure:"max_dimension" yaml:"max_dimension" json:"max_dimension"`
	CrossCheck   bool   `mapstructure:"cross_check" yaml:"cross_check" json:"cross_check"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// MetricsConfig names the Prometheus textfile written after a scan.
// An empty File disables it.
type MetricsConfig struct {
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
	validBinarizers = []string{"hybrid", "histogram"}
	validFormats    = []string{"text", "json", "yaml"}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Scan: ScanConfig{
			Binarizer:   "hybrid",
			Concurrency: 4,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format: %s (must be one of: %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if !contains(validBinarizers, c.Scan.Binarizer) {
		return fmt.Errorf("invalid binarizer: %s (must be one of: %s)", c.Scan.Binarizer, strings.Join(validBinarizers, ", "))
	}
	if !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d (must be positive)", c.Scan.Concurrency)
	}
	if c.Scan.MaxDimension < 0 {
		return fmt.Errorf("invalid max dimension: %d (must not be negative)", c.Scan.MaxDimension)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ReaderOptions translates the scan settings into qrcode.Reader options.
func (c *Config) ReaderOptions(logger *slog.Logger) []qrcode.Option {
	opts := []qrcode.Option{qrcode.WithLogger(logger)}
	if c.Scan.Binarizer == "histogram" {
		opts = append(opts, qrcode.WithBinarizer(qrcode.Histogram))
	} else {
		opts = append(opts, qrcode.WithBinarizer(qrcode.Hybrid))
	}
	if c.Scan.CharacterSet != "" {
		opts = append(opts, qrcode.WithCharacterSet(c.Scan.CharacterSet))
	}
	if c.Scan.AlsoInverted {
		opts = append(opts, qrcode.WithAlsoInverted())
	}
	return opts
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
