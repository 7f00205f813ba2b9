package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/gridwatch/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "server.read_limit_kb")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidURLSchemes returns the websocket schemes accepted for server.url
func ValidURLSchemes() []string {
	return []string{"ws", "wss"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateOverlay()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateReplay()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateServer validates the ServerConfig
func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	// An empty URL is allowed; watch then requires one on the command line.
	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{
				Field:   "server.url",
				Value:   c.Server.URL,
				Message: "is not a valid URL",
			})
		case !slices.Contains(ValidURLSchemes(), u.Scheme):
			errors = append(errors, ValidationError{
				Field:   "server.url",
				Value:   c.Server.URL,
				Message: fmt.Sprintf("scheme must be one of: %s", strings.Join(ValidURLSchemes(), ", ")),
			})
		case u.Host == "":
			errors = append(errors, ValidationError{
				Field:   "server.url",
				Value:   c.Server.URL,
				Message: "must include a host",
			})
		}
	}

	if c.Server.HandshakeTimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.handshake_timeout_ms",
			Value:   c.Server.HandshakeTimeoutMs,
			Message: "must be positive",
		})
	}

	// Frames hold a full grid; anything below 64KB cannot carry a real step.
	const minReadLimitKB = 64
	const maxReadLimitKB = 1 << 20 // 1GB
	if c.Server.ReadLimitKB < minReadLimitKB {
		errors = append(errors, ValidationError{
			Field:   "server.read_limit_kb",
			Value:   c.Server.ReadLimitKB,
			Message: fmt.Sprintf("must be at least %dKB", minReadLimitKB),
		})
	}
	if c.Server.ReadLimitKB > maxReadLimitKB {
		errors = append(errors, ValidationError{
			Field:   "server.read_limit_kb",
			Value:   c.Server.ReadLimitKB,
			Message: fmt.Sprintf("exceeds maximum of %dKB", maxReadLimitKB),
		})
	}

	return errors
}

// validateOverlay validates the OverlayConfig
func (c *Config) validateOverlay() []ValidationError {
	var errors []ValidationError

	if c.Overlay.SurfaceWidth <= 0 {
		errors = append(errors, ValidationError{
			Field:   "overlay.surface_width",
			Value:   c.Overlay.SurfaceWidth,
			Message: "must be positive",
		})
	}

	const maxSurfaceWidth = 4096
	if c.Overlay.SurfaceWidth > maxSurfaceWidth {
		errors = append(errors, ValidationError{
			Field:   "overlay.surface_width",
			Value:   c.Overlay.SurfaceWidth,
			Message: fmt.Sprintf("exceeds maximum of %d pixels", maxSurfaceWidth),
		})
	}

	if c.Overlay.MaxCellSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "overlay.max_cell_size",
			Value:   c.Overlay.MaxCellSize,
			Message: "must be positive",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// A theme file replaces the named theme, so the name is not checked then.
	if c.TUI.ThemeFile == "" && !styles.IsBuiltinTheme(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.BuiltinThemes(), ", ")),
		})
	}

	const minPatternColumns = 4
	const maxPatternColumns = 200
	if c.TUI.PatternColumns < minPatternColumns {
		errors = append(errors, ValidationError{
			Field:   "tui.pattern_columns",
			Value:   c.TUI.PatternColumns,
			Message: fmt.Sprintf("must be at least %d columns", minPatternColumns),
		})
	}
	if c.TUI.PatternColumns > maxPatternColumns {
		errors = append(errors, ValidationError{
			Field:   "tui.pattern_columns",
			Value:   c.TUI.PatternColumns,
			Message: fmt.Sprintf("exceeds maximum of %d columns", maxPatternColumns),
		})
	}

	return errors
}

// validateReplay validates the ReplayConfig
func (c *Config) validateReplay() []ValidationError {
	var errors []ValidationError

	if c.Replay.StaticFile == "" || strings.ContainsAny(c.Replay.StaticFile, `/\`) {
		errors = append(errors, ValidationError{
			Field:   "replay.static_file",
			Value:   c.Replay.StaticFile,
			Message: "must be a plain file name",
		})
	}

	if c.Replay.Pattern == "" {
		errors = append(errors, ValidationError{
			Field:   "replay.pattern",
			Value:   c.Replay.Pattern,
			Message: "cannot be empty",
		})
	} else if _, err := glob.Compile(c.Replay.Pattern); err != nil {
		errors = append(errors, ValidationError{
			Field:   "replay.pattern",
			Value:   c.Replay.Pattern,
			Message: fmt.Sprintf("invalid glob: %v", err),
		})
	}

	if c.Replay.StepIntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "replay.step_interval_ms",
			Value:   c.Replay.StepIntervalMs,
			Message: "must be positive",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
