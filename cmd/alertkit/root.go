// Package main provides the CLI entrypoint for alertkit.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// annotationTUI marks commands that take over the terminal.
const annotationTUI = "tui"

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		logFile    string
	}
	logger  *slog.Logger
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "alertkit",
	Short: "Transient alert toasts for the terminal",
	Long: `alertkit shows short-lived alert toasts anchored to the terminal window.

Alerts are placed at one of nine anchors (nw, n, ne, w, center, e, sw, s, se),
sized as a fraction of the terminal width, truncated with an ellipsis when the
text does not fit, and removed after their duration or on click.

Running alertkit without a subcommand launches the interactive demo.`,
	Version:     fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Annotations: map[string]string{annotationTUI: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		if err := setupLogger(cmd.Annotations[annotationTUI] == "true"); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink != nil {
			return logSink.Close()
		}
		return nil
	},
	// Default to the demo when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/alertkit/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to this file (TUI commands discard logs otherwise)")
}

// setupLogger configures the global slog logger.
// Commands that own the terminal log to --log-file or nowhere.
func setupLogger(tui bool) error {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	var w io.Writer = os.Stderr
	switch {
	case globalOpts.logFile != "":
		f, err := os.OpenFile(globalOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		w = f
		logSink = f
	case tui:
		w = io.Discard
	}

	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}

// newThemeLoader loads the configured theme, falling back to the default.
func newThemeLoader() *theme.Loader {
	loader := theme.NewLoader(config.ThemesDir(), logger)
	if _, err := loader.Load(getConfig().Theme.Name); err != nil {
		logger.Warn("failed to load theme, using default", "theme", getConfig().Theme.Name, "error", err)
	}
	return loader
}
