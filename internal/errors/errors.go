// Package errors provides the error definitions shared by gridwatch's live
// session, protocol decoding and replay archives.
//
// Sentinel errors identify the failure; typed errors carry context such as
// the server URL or the replay path and classify whether a retry may help.
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMalformedFrame) { ... }
//
//	var connErr *errors.ConnectionError
//	if errors.As(err, &connErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//
// The overlay core never returns errors; everything here belongs to its
// collaborators.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors that are logged and skipped.
	SeverityWarning Severity = iota
	// SeverityError is for errors that end the current session or command.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Live feed sentinel errors
var (
	// ErrNotConnected indicates that the live server could not be reached or
	// the connection dropped.
	ErrNotConnected = New("live server not connected")
	// ErrMalformedFrame indicates a frame that is not valid JSON or has an
	// unknown type.
	ErrMalformedFrame = New("malformed frame")
	// ErrSchemaViolation indicates a frame that decoded but failed schema
	// validation.
	ErrSchemaViolation = New("schema violation")
)

// Replay sentinel errors
var (
	// ErrReplayNotFound indicates a missing replay directory or static file.
	ErrReplayNotFound = New("replay not found")
	// ErrReplayEmpty indicates a replay without any recorded step.
	ErrReplayEmpty = New("replay has no steps")
	// ErrStepOutOfRange indicates a step index outside the loaded replay.
	ErrStepOutOfRange = New("step out of range")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// GridwatchError is implemented by every typed error in this package.
type GridwatchError interface {
	error
	Unwrap() error
	Severity() Severity
	IsRetryable() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

func (e *baseError) format(prefix string) string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// ConnectionError reports a failure talking to the live server.
//
// Example:
//
//	err := errors.NewConnectionError("dial failed", cause).WithURL("ws://localhost:8000/live/monitor")
//	fmt.Println(err) // "connection error [ws://localhost:8000/live/monitor]: dial failed: ..."
type ConnectionError struct {
	baseError
	URL string
}

// NewConnectionError creates a ConnectionError. Connection failures are
// retryable by default: the server may come up later.
func NewConnectionError(message string, cause error) *ConnectionError {
	return &ConnectionError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			severity:  SeverityError,
			retryable: true,
		},
	}
}

// WithURL adds the server URL to the error context.
func (e *ConnectionError) WithURL(url string) *ConnectionError {
	e.URL = url
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *ConnectionError) WithRetryable(r bool) *ConnectionError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *ConnectionError) Error() string {
	prefix := "connection error"
	if e.URL != "" {
		prefix = fmt.Sprintf("connection error [%s]", e.URL)
	}
	return e.format(prefix)
}

// Is matches any *ConnectionError and ErrNotConnected, then defers to the cause.
func (e *ConnectionError) Is(target error) bool {
	if _, ok := target.(*ConnectionError); ok {
		return true
	}
	if target == ErrNotConnected {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// ReplayError reports a failure reading or writing a replay archive.
type ReplayError struct {
	baseError
	Path string
	Step int
}

// NewReplayError creates a ReplayError. Step is -1 until WithStep is called.
func NewReplayError(message string, cause error) *ReplayError {
	return &ReplayError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
		Step: -1,
	}
}

// WithPath adds the file or directory path to the error context.
func (e *ReplayError) WithPath(path string) *ReplayError {
	e.Path = path
	return e
}

// WithStep adds the step index to the error context.
func (e *ReplayError) WithStep(step int) *ReplayError {
	e.Step = step
	return e
}

// WithSeverity sets the error severity.
func (e *ReplayError) WithSeverity(s Severity) *ReplayError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ReplayError) Error() string {
	prefix := "replay error"
	switch {
	case e.Path != "" && e.Step >= 0:
		prefix = fmt.Sprintf("replay error [%s, step=%d]", e.Path, e.Step)
	case e.Path != "":
		prefix = fmt.Sprintf("replay error [%s]", e.Path)
	case e.Step >= 0:
		prefix = fmt.Sprintf("replay error [step=%d]", e.Step)
	}
	return e.format(prefix)
}

// Is matches any *ReplayError, then defers to the cause.
func (e *ReplayError) Is(target error) bool {
	if _, ok := target.(*ReplayError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// FrameError reports a frame that could not be decoded or validated. The
// live session logs these and keeps reading.
type FrameError struct {
	baseError
	Kind string
}

// NewFrameError creates a FrameError of warning severity.
func NewFrameError(kind, message string, cause error) *FrameError {
	return &FrameError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityWarning,
		},
		Kind: kind,
	}
}

// Error returns the formatted error message.
func (e *FrameError) Error() string {
	prefix := "frame error"
	if e.Kind != "" {
		prefix = fmt.Sprintf("frame error [%s]", e.Kind)
	}
	return e.format(prefix)
}

// Is matches any *FrameError, then defers to the cause.
func (e *FrameError) Is(target error) bool {
	if _, ok := target.(*FrameError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// IsRetryable returns true if the error is transient and the operation may
// succeed on retry.
//
// Example:
//
//	if errors.IsRetryable(err) {
//	    return retryCmd()
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var gwErr GridwatchError
	if As(err, &gwErr) {
		return gwErr.IsRetryable()
	}

	return Is(err, ErrNotConnected)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement GridwatchError.
func GetSeverity(err error) Severity {
	var gwErr GridwatchError
	if As(err, &gwErr) {
		return gwErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
