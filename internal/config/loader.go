package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "qrdecode"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "QRDECODE"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader on the global viper instance, so flags
// bound by the root command are seen.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewLoaderWithViper returns a loader on v. Tests use it with a fresh
// instance and an in-memory filesystem.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// SetFs sets the filesystem config files are read from.
func (l *Loader) SetFs(fs afero.Fs) {
	l.v.SetFs(fs)
}

// Load reads the first qrdecode.yaml found on the search path, then
// applies environment variables and defaults. A missing file is not an
// error.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return l.unmarshal()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// GetViper returns the underlying viper instance.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "qrdecode"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "qrdecode"))
	}

	l.v.AddConfigPath("/etc/qrdecode")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults registers every key, which also lets AutomaticEnv find
// nested keys during Unmarshal.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("log_format", defaults.LogFormat)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("scan.binarizer", defaults.Scan.Binarizer)
	l.v.SetDefault("scan.character_set", defaults.Scan.CharacterSet)
	l.v.SetDefault("scan.also_inverted", defaults.Scan.AlsoInverted)
	l.v.SetDefault("scan.concurrency", defaults.Scan.Concurrency)
	l.v.SetDefault("scan.max_dimension", defaults.Scan.MaxDimension)
	l.v.SetDefault("scan.cross_check", defaults.Scan.CrossCheck)

	l.v.SetDefault("output.format", defaults.Output.Format)

	l.v.SetDefault("metrics.file", defaults.Metrics.File)
}
