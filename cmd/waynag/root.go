// Package main provides the CLI entrypoint for waynag.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/waynag/internal/action"
	"github.com/jmylchreest/waynag/internal/config"
	"github.com/jmylchreest/waynag/internal/font"
	"github.com/jmylchreest/waynag/internal/wayland"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		message    string
		severity   string
		detailed   bool
		buttons    []string
		window     bool
		configPath string
		verbose    bool
	}
	logger *slog.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "waynag",
	Short: "On-screen alert boxes for Wayland desktops",
	Long: `waynag shows an alert message with clickable action buttons on a
Wayland desktop.

By default the alert is a strip along a screen edge on every output,
using the wlr-layer-shell protocol. With --window it is a regular
floating window instead, for compositors without layer shell support.

Each button runs its shell command when clicked; the rightmost "x"
button dismisses the alert.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runAlert,
}

// sessionDriver is the mode-specific event loop: bar or window.
type sessionDriver interface {
	Run() error
	Reload(*config.Config)
}

func runAlert(cmd *cobra.Command, args []string) error {
	alert, err := config.NewAlert(globalOpts.message, globalOpts.severity, globalOpts.buttons)
	if err != nil {
		return err
	}
	if globalOpts.detailed {
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Warn("failed to read detailed message from stdin", "error", err)
		} else {
			alert.Detailed = string(body)
		}
	}

	fnt, err := font.Load(cfg.Font.Source)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	session, err := wayland.Connect(logger)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := action.NewShellRunner(logger)

	var driver sessionDriver
	if globalOpts.window {
		driver, err = wayland.NewWindowSession(session, cfg, alert, fnt, runner, logger)
	} else {
		driver, err = wayland.NewBarSession(session, cfg, alert, fnt, runner, logger)
	}
	if err != nil {
		return err
	}

	if cfg.Watch.Enabled {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if path != "" {
			watcher, err := config.NewWatcher(path, driver.Reload, logger)
			if err != nil {
				logger.Warn("config watcher unavailable", "error", err)
			} else if err := watcher.Start(); err != nil {
				logger.Warn("config watcher failed to start", "error", err)
			} else {
				defer watcher.Close()
			}
		}
	}

	return driver.Run()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&globalOpts.message, "message", "m", "",
		"Message to display (required)")
	rootCmd.Flags().StringVarP(&globalOpts.severity, "type", "t", "error",
		"Message type: error or warning")
	rootCmd.Flags().BoolVarP(&globalOpts.detailed, "detailed-message", "l", false,
		"Read a detailed message body from stdin")
	rootCmd.Flags().StringArrayVarP(&globalOpts.buttons, "button", "b", nil,
		"Add a button as LABEL:COMMAND (repeatable)")
	rootCmd.Flags().BoolVar(&globalOpts.window, "window", false,
		"Show a floating window instead of screen-edge bars")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/waynag/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
