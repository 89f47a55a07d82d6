// Package cmd implements the qrdecode command line.
package cmd

import (
	"io"
	"log/slog"

	"github.com/ericlevine/qrdecode/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by all commands of one invocation.
type app struct {
	fs      afero.Fs
	loader  *config.Loader
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand builds the command tree. Files, including the config
// file, are read from fs. Each call gets its own viper instance, so
// flag values never leak between invocations.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:     fs,
		loader: config.NewLoaderWithViper(viper.New()),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a.loader.SetFs(fs)

	root := &cobra.Command{
		Use:   "qrdecode",
		Short: "Decode QR codes from image files",
		Long: `qrdecode reads PNG, JPEG, GIF, BMP, TIFF and WebP images, optionally
compressed with zstd or gzip, and decodes the QR code each one contains.

Examples:
  qrdecode scan ticket.png
  qrdecode scan --format json scans/*.png.zst
  qrdecode scan --cross-check --metrics-file /var/lib/node_exporter/qrdecode.prom *.jpg`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is search in ., $HOME, $HOME/.config/qrdecode, /etc/qrdecode)")
	flags.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	v := a.loader.GetViper()
	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_format", flags.Lookup("log-format"))

	root.AddCommand(newScanCommand(a), newVersionCommand())
	return root
}

// setup loads the configuration and builds the logger. Logs go to
// stderr so that stdout carries only results.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loader.LoadWithFile(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	a.logger = slog.New(handler)
	a.logger.Debug("configuration loaded", "file", a.loader.GetConfigFileUsed())
	return nil
}
