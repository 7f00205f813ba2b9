package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/gridwatch/internal/logging"
	"github.com/Iron-Ham/gridwatch/internal/overlay"
	"github.com/Iron-Ham/gridwatch/internal/replay"
	"github.com/Iron-Ham/gridwatch/internal/session"
)

// Config represents the complete gridwatch configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Overlay OverlayConfig `mapstructure:"overlay"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls the live connection to the simulation server
type ServerConfig struct {
	// URL is the websocket endpoint of the monitor feed (ws:// or wss://)
	URL string `mapstructure:"url"`
	// HandshakeTimeoutMs bounds the websocket handshake (in milliseconds)
	HandshakeTimeoutMs int `mapstructure:"handshake_timeout_ms"`
	// ReadLimitKB caps the size of a single frame (in kilobytes)
	ReadLimitKB int `mapstructure:"read_limit_kb"`
	// Validate checks every frame against the embedded JSON schemas
	Validate bool `mapstructure:"validate"`
}

// OverlayConfig controls the task pattern layout
type OverlayConfig struct {
	// SurfaceWidth is the width of the pattern surface in pixels (default: 318)
	SurfaceWidth int `mapstructure:"surface_width"`
	// MaxCellSize caps the size of one pattern cell in pixels (default: 50)
	MaxCellSize int `mapstructure:"max_cell_size"`
	// ClampCellSize keeps cells at least one pixel wide on very wide patterns
	ClampCellSize bool `mapstructure:"clamp_cell_size"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "nord", "dracula", "monokai"
	Theme string `mapstructure:"theme"`
	// ThemeFile is a YAML theme file; it takes precedence over Theme
	ThemeFile string `mapstructure:"theme_file"`
	// PatternColumns is the maximum width of the task pattern art in columns
	PatternColumns int `mapstructure:"pattern_columns"`
	// ShowHelp shows the key help line below the overlay
	ShowHelp bool `mapstructure:"show_help"`
}

// ReplayConfig controls recorded replays
type ReplayConfig struct {
	// StaticFile is the name of the static snapshot inside a replay directory
	StaticFile string `mapstructure:"static_file"`
	// Pattern is the glob matching step chunk file names
	Pattern string `mapstructure:"pattern"`
	// Follow watches the replay directory for new steps
	Follow bool `mapstructure:"follow"`
	// StepIntervalMs is the playback speed (in milliseconds per step)
	StepIntervalMs int `mapstructure:"step_interval_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups (default: true)
	Compress bool `mapstructure:"compress"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	rotation := logging.DefaultRotationConfig()
	return &Config{
		Server: ServerConfig{
			URL:                "ws://localhost:8000/live/monitor",
			HandshakeTimeoutMs: int(session.DefaultHandshakeTimeout / time.Millisecond),
			ReadLimitKB:        session.DefaultReadLimit >> 10,
			Validate:           false,
		},
		Overlay: OverlayConfig{
			SurfaceWidth:  overlay.DefaultSurfaceWidth,
			MaxCellSize:   overlay.DefaultMaxCellSize,
			ClampCellSize: true,
		},
		TUI: TUIConfig{
			Theme:          "default",
			PatternColumns: 40,
			ShowHelp:       true,
		},
		Replay: ReplayConfig{
			StaticFile:     replay.DefaultStaticFile,
			Pattern:        replay.DefaultPattern,
			Follow:         false,
			StepIntervalMs: 250,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			Compress:   rotation.Compress,
		},
	}
}

// HandshakeTimeout returns the handshake timeout as a time.Duration
func (c *ServerConfig) HandshakeTimeout() time.Duration {
	return time.Duration(c.HandshakeTimeoutMs) * time.Millisecond
}

// ReadLimit returns the frame size limit in bytes
func (c *ServerConfig) ReadLimit() int64 {
	return int64(c.ReadLimitKB) << 10
}

// LayoutOptions converts the overlay settings for the composer
func (c *OverlayConfig) LayoutOptions() overlay.LayoutOptions {
	return overlay.LayoutOptions{
		SurfaceWidth:  c.SurfaceWidth,
		MaxCellSize:   c.MaxCellSize,
		ClampCellSize: c.ClampCellSize,
	}
}

// StepInterval returns the playback speed as a time.Duration
func (c *ReplayConfig) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalMs) * time.Millisecond
}

// Options converts the replay settings for replay.Open
func (c *ReplayConfig) Options() replay.Options {
	return replay.Options{
		StaticFile: c.StaticFile,
		Pattern:    c.Pattern,
		AllowEmpty: c.Follow,
	}
}

// Rotation converts the logging settings for the rotating writer
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Server defaults
	viper.SetDefault("server.url", defaults.Server.URL)
	viper.SetDefault("server.handshake_timeout_ms", defaults.Server.HandshakeTimeoutMs)
	viper.SetDefault("server.read_limit_kb", defaults.Server.ReadLimitKB)
	viper.SetDefault("server.validate", defaults.Server.Validate)

	// Overlay defaults
	viper.SetDefault("overlay.surface_width", defaults.Overlay.SurfaceWidth)
	viper.SetDefault("overlay.max_cell_size", defaults.Overlay.MaxCellSize)
	viper.SetDefault("overlay.clamp_cell_size", defaults.Overlay.ClampCellSize)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.pattern_columns", defaults.TUI.PatternColumns)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)

	// Replay defaults
	viper.SetDefault("replay.static_file", defaults.Replay.StaticFile)
	viper.SetDefault("replay.pattern", defaults.Replay.Pattern)
	viper.SetDefault("replay.follow", defaults.Replay.Follow)
	viper.SetDefault("replay.step_interval_ms", defaults.Replay.StepIntervalMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridwatch")
	}
	// Fall back to ~/.config/gridwatch
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gridwatch"
	}
	return filepath.Join(home, ".config", "gridwatch")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory holding gridwatch.log and its backups
func LogDir() string {
	return filepath.Join(ConfigDir(), "logs")
}
