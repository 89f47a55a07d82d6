package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) (*Loader, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	l := NewLoaderWithViper(viper.New())
	l.SetFs(fs)
	return l, fs
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "hybrid", cfg.Scan.Binarizer)
	assert.Equal(t, 4, cfg.Scan.Concurrency)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Metrics.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level: trace"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
		{"binarizer", func(c *Config) { c.Scan.Binarizer = "otsu" }, "invalid binarizer: otsu"},
		{"output format", func(c *Config) { c.Output.Format = "csv" }, "invalid output format: csv"},
		{"zero concurrency", func(c *Config) { c.Scan.Concurrency = 0 }, "invalid concurrency: 0"},
		{"negative dimension", func(c *Config) { c.Scan.MaxDimension = -1 }, "invalid max dimension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWithoutFile(t *testing.T) {
	l, _ := newTestLoader(t)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Empty(t, l.GetConfigFileUsed())
}

func TestLoadWithFile(t *testing.T) {
	l, fs := newTestLoader(t)
	yaml := `
log_level: debug
scan:
  binarizer: histogram
  concurrency: 2
  max_dimension: 800
  cross_check: true
output:
  format: json
metrics:
  file: /tmp/qrdecode.prom
`
	require.NoError(t, afero.WriteFile(fs, "/etc/qrdecode/qrdecode.yaml", []byte(yaml), 0o644))

	cfg, err := l.LoadWithFile("/etc/qrdecode/qrdecode.yaml")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "histogram", cfg.Scan.Binarizer)
	assert.Equal(t, 2, cfg.Scan.Concurrency)
	assert.Equal(t, 800, cfg.Scan.MaxDimension)
	assert.True(t, cfg.Scan.CrossCheck)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "/tmp/qrdecode.prom", cfg.Metrics.File)
}

func TestLoadWithMissingFile(t *testing.T) {
	l, _ := newTestLoader(t)
	_, err := l.LoadWithFile("/nope/qrdecode.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	l, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("output:\n  format: csv\n"), 0o644))

	_, err := l.LoadWithFile("/c.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("QRDECODE_SCAN_CONCURRENCY", "8")
	t.Setenv("QRDECODE_OUTPUT_FORMAT", "yaml")

	l, _ := newTestLoader(t)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Scan.Concurrency)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	cfg.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
	cfg.Verbose = true
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestReaderOptions(t *testing.T) {
	cfg := DefaultConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Len(t, cfg.ReaderOptions(logger), 2)

	cfg.Scan.CharacterSet = "Shift_JIS"
	cfg.Scan.AlsoInverted = true
	assert.Len(t, cfg.ReaderOptions(logger), 4)
}
