package cmd

import (
	"fmt"

	"github.com/Iron-Ham/gridwatch/internal/config"
	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/session"
	"github.com/Iron-Ham/gridwatch/internal/tui"
	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
)

// loadConfig loads and validates the configuration. Unlike config.Get it
// reports invalid settings instead of silently using defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger opens the rotating log file, or a no-op logger when logging is
// disabled. The terminal belongs to the TUI, so logs never go to stderr.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLoggerWithRotation(
		config.LogDir(),
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Rotation(),
	)
}

// loadStyles resolves the configured theme.
func loadStyles(cfg *config.Config) (*styles.ThemedStyles, error) {
	palette, err := styles.ResolvePalette(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return nil, err
	}
	return styles.NewThemedStyles(palette), nil
}

// tuiOptions builds the model options shared by watch and replay.
func tuiOptions(cfg *config.Config, logger *logging.Logger) (tui.Options, error) {
	s, err := loadStyles(cfg)
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Styles:         s,
		Layout:         cfg.Overlay.LayoutOptions(),
		PatternColumns: cfg.TUI.PatternColumns,
		ShowHelp:       cfg.TUI.ShowHelp,
		Logger:         logger,
		Follow:         cfg.Replay.Follow,
		StepInterval:   cfg.Replay.StepInterval(),
	}, nil
}

// sessionOptions builds the live session options for url.
func sessionOptions(cfg *config.Config, url string, logger *logging.Logger) session.Options {
	return session.Options{
		URL:              url,
		HandshakeTimeout: cfg.Server.HandshakeTimeout(),
		ReadLimit:        cfg.Server.ReadLimit(),
		Validate:         cfg.Server.Validate,
		Logger:           logger,
	}
}

// serverURL picks the URL argument over the configured server.url.
func serverURL(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Server.URL == "" {
		return "", fmt.Errorf("no server URL: pass one as an argument or set server.url")
	}
	return cfg.Server.URL, nil
}
