// Package config provides CLI commands for managing gridwatch configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/gridwatch/internal/config"
	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify gridwatch configuration",
	Long: `View or modify gridwatch configuration.

Use 'config show' to display the effective configuration.
Use subcommands to modify settings or create a config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  gridwatch config set server.url ws://sim.example:8000/live/monitor
  gridwatch config set tui.theme nord
  gridwatch config set replay.step_interval_ms 100

Run 'gridwatch config show' to see every key and its current value.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/gridwatch/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  gridwatch config reset             # Reset all to defaults
  gridwatch config reset tui.theme   # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind describes how a value given to 'config set' is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindTheme
	kindLevel
)

type setting struct {
	kind keyKind
	def  any
}

// settings maps every settable key to its kind and default value.
func settings() map[string]setting {
	d := appconfig.Default()
	return map[string]setting{
		"server.url":                  {kindString, d.Server.URL},
		"server.handshake_timeout_ms": {kindInt, d.Server.HandshakeTimeoutMs},
		"server.read_limit_kb":        {kindInt, d.Server.ReadLimitKB},
		"server.validate":             {kindBool, d.Server.Validate},
		"overlay.surface_width":       {kindInt, d.Overlay.SurfaceWidth},
		"overlay.max_cell_size":       {kindInt, d.Overlay.MaxCellSize},
		"overlay.clamp_cell_size":     {kindBool, d.Overlay.ClampCellSize},
		"tui.theme":                   {kindTheme, d.TUI.Theme},
		"tui.theme_file":              {kindString, d.TUI.ThemeFile},
		"tui.pattern_columns":         {kindInt, d.TUI.PatternColumns},
		"tui.show_help":               {kindBool, d.TUI.ShowHelp},
		"replay.static_file":          {kindString, d.Replay.StaticFile},
		"replay.pattern":              {kindString, d.Replay.Pattern},
		"replay.follow":               {kindBool, d.Replay.Follow},
		"replay.step_interval_ms":     {kindInt, d.Replay.StepIntervalMs},
		"logging.enabled":             {kindBool, d.Logging.Enabled},
		"logging.level":               {kindLevel, d.Logging.Level},
		"logging.max_size_mb":         {kindInt, d.Logging.MaxSizeMB},
		"logging.max_backups":         {kindInt, d.Logging.MaxBackups},
		"logging.compress":            {kindBool, d.Logging.Compress},
	}
}

// SettableKeys returns every key accepted by 'config set', sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settings()))
	for k := range settings() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := appconfig.Get()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "server:")
	fmt.Fprintf(out, "  url: %s\n", cfg.Server.URL)
	fmt.Fprintf(out, "  handshake_timeout_ms: %d\n", cfg.Server.HandshakeTimeoutMs)
	fmt.Fprintf(out, "  read_limit_kb: %d\n", cfg.Server.ReadLimitKB)
	fmt.Fprintf(out, "  validate: %v\n", cfg.Server.Validate)

	fmt.Fprintln(out, "overlay:")
	fmt.Fprintf(out, "  surface_width: %d\n", cfg.Overlay.SurfaceWidth)
	fmt.Fprintf(out, "  max_cell_size: %d\n", cfg.Overlay.MaxCellSize)
	fmt.Fprintf(out, "  clamp_cell_size: %v\n", cfg.Overlay.ClampCellSize)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  theme_file: %s\n", cfg.TUI.ThemeFile)
	fmt.Fprintf(out, "  pattern_columns: %d\n", cfg.TUI.PatternColumns)
	fmt.Fprintf(out, "  show_help: %v\n", cfg.TUI.ShowHelp)

	fmt.Fprintln(out, "replay:")
	fmt.Fprintf(out, "  static_file: %s\n", cfg.Replay.StaticFile)
	fmt.Fprintf(out, "  pattern: %s\n", cfg.Replay.Pattern)
	fmt.Fprintf(out, "  follow: %v\n", cfg.Replay.Follow)
	fmt.Fprintf(out, "  step_interval_ms: %d\n", cfg.Replay.StepIntervalMs)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Fprintf(out, "  compress: %v\n", cfg.Logging.Compress)

	return nil
}

// parseValue converts a command-line value for key into its typed form.
func parseValue(key, value string) (any, error) {
	s, ok := settings()[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(SettableKeys(), ", "))
	}

	switch s.kind {
	case kindTheme:
		if !styles.IsBuiltinTheme(value) {
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s",
				value, strings.Join(styles.BuiltinThemes(), ", "))
		}
		return value, nil
	case kindLevel:
		if !slices.Contains(appconfig.ValidLogLevels(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return value, nil
	case kindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case kindInt:
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return intVal, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// writeConfig persists viper's settings to the user's config file.
func writeConfig() (string, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

// defaultConfigContent is the commented file written by 'config init'.
const defaultConfigContent = `# gridwatch configuration

# Live monitor feed of the simulation server
server:
  # Websocket endpoint (ws:// or wss://)
  url: ws://localhost:8000/live/monitor
  # Websocket handshake timeout in milliseconds
  handshake_timeout_ms: 10000
  # Largest accepted frame in kilobytes
  read_limit_kb: 8192
  # Check every frame against the bundled JSON schemas
  validate: false

# Task pattern layout
overlay:
  # Width of the pattern surface in pixels
  surface_width: 318
  # Largest size of one pattern cell in pixels
  max_cell_size: 50
  # Keep cells at least one pixel wide on very wide patterns
  clamp_cell_size: true

# TUI (terminal user interface) settings
tui:
  # Color theme: default, nord, dracula, monokai
  theme: default
  # YAML theme file, overrides theme when set
  # (see 'gridwatch config theme export')
  theme_file: ""
  # Widest pattern art in terminal columns
  pattern_columns: 40
  # Show the key help line
  show_help: true

# Recorded replays
replay:
  # Static snapshot file inside a replay directory
  static_file: static.json
  # Glob matching step chunk files, read in name order
  pattern: "steps-*.jsonl.zst"
  # Watch replay directories for new steps
  follow: false
  # Playback speed in milliseconds per step
  step_interval_ms: 250

# Debug log written to ~/.config/gridwatch/logs
logging:
  enabled: true
  # debug, info, warn, error
  level: info
  max_size_mb: 10
  max_backups: 3
  compress: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'gridwatch config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize gridwatch.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: GRIDWATCH_* (e.g., GRIDWATCH_SERVER_URL)")
	fmt.Fprintf(out, "Log directory: %s\n", appconfig.LogDir())

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	all := settings()

	if len(args) == 0 {
		for key, s := range all {
			viper.Set(key, s.def)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reset all configuration to defaults.")
	} else {
		key := args[0]
		s, ok := all[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(SettableKeys(), ", "))
		}
		viper.Set(key, s.def)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to default: %v\n", key, s.def)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}
