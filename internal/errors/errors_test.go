package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectionError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConnectionError
		want string
	}{
		{
			name: "message only",
			err:  NewConnectionError("dial failed", nil),
			want: "connection error: dial failed",
		},
		{
			name: "with url and cause",
			err:  NewConnectionError("dial failed", io.EOF).WithURL("ws://host/live"),
			want: "connection error [ws://host/live]: dial failed: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectionError_Is(t *testing.T) {
	err := NewConnectionError("read failed", io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrNotConnected) {
		t.Error("ConnectionError should match ErrNotConnected")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("ConnectionError should match its cause")
	}
	if !errors.Is(err, &ConnectionError{}) {
		t.Error("ConnectionError should match any ConnectionError")
	}
	if errors.Is(err, ErrReplayEmpty) {
		t.Error("ConnectionError should not match unrelated sentinels")
	}
}

func TestReplayError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ReplayError
		want string
	}{
		{"bare", NewReplayError("no steps", nil), "replay error: no steps"},
		{"path", NewReplayError("open", ErrReplayNotFound).WithPath("/tmp/r"), "replay error [/tmp/r]: open: replay not found"},
		{"step", NewReplayError("seek", nil).WithStep(7), "replay error [step=7]: seek"},
		{"path and step", NewReplayError("decode", nil).WithPath("a.zst").WithStep(0), "replay error [a.zst, step=0]: decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrameError(t *testing.T) {
	err := NewFrameError("step", "decode failed", ErrMalformedFrame)

	if got := err.Error(); got != "frame error [step]: decode failed: malformed frame" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrMalformedFrame) {
		t.Error("FrameError should match its cause")
	}
	if GetSeverity(err) != SeverityWarning {
		t.Errorf("GetSeverity() = %v, want warning", GetSeverity(err))
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"connection", NewConnectionError("dial", nil), true},
		{"connection not retryable", NewConnectionError("bad url", nil).WithRetryable(false), false},
		{"wrapped connection", fmt.Errorf("watch: %w", NewConnectionError("dial", nil)), true},
		{"not connected sentinel", Wrap(ErrNotConnected, "read"), true},
		{"replay", NewReplayError("open", ErrReplayNotFound), false},
		{"frame", NewFrameError("static", "bad", ErrSchemaViolation), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(errors.New("x")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want error", got)
	}
	if got := GetSeverity(NewReplayError("x", nil).WithSeverity(SeverityWarning)); got != SeverityWarning {
		t.Errorf("GetSeverity(replay) = %v, want warning", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(ErrStepOutOfRange, "seek %d", 12)
	if err.Error() != "seek 12: step out of range" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !errors.Is(err, ErrStepOutOfRange) {
		t.Error("Wrapf should preserve the chain")
	}
}
