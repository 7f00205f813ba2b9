package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{LevelDebug, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
		{"bogus", []string{"INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			entries := decodeLines(t, buf.Bytes())
			if len(entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d:\n%s", len(entries), len(tt.want), buf.String())
			}
			for i, entry := range entries {
				if entry["level"] != tt.want[i] {
					t.Errorf("entry %d level = %v, want %s", i, entry["level"], tt.want[i])
				}
			}
		})
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelInfo)

	child := logger.WithSimulation("sim-7").WithStep(42).WithComponent("session")
	child.Warn("duplicate task name", "task", "task3")
	logger.Info("root entry")

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	got := entries[0]
	if got["sim_id"] != "sim-7" || got["step"] != float64(42) || got["component"] != "session" || got["task"] != "task3" {
		t.Errorf("child entry = %v", got)
	}
	if _, ok := entries[1]["sim_id"]; ok {
		t.Error("parent logger should not inherit child attributes")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelInfo)

	if logger.With() != logger {
		t.Error("With() without args should return the receiver")
	}

	logger.With("url", "ws://host", 42, "skipped", "count", 3).Info("dial")
	entry := decodeLines(t, buf.Bytes())[0]
	if entry["url"] != "ws://host" || entry["count"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLoggerWithRotation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewLoggerWithRotation(dir, LevelInfo, RotationConfig{MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewLoggerWithRotation failed: %v", err)
	}
	logger.WithStep(1).Info("frame")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if entries := decodeLines(t, content); len(entries) != 1 || entries[0]["msg"] != "frame" {
		t.Errorf("entries = %v", entries)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Debug("debug")
	logger.WithStep(3).Error("error")

	if err := logger.Close(); err != nil {
		t.Errorf("NopLogger.Close() returned error: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"invalid", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := ValidLevels(); len(got) != 4 || got[0] != LevelDebug || got[3] != LevelError {
		t.Errorf("ValidLevels() = %v", got)
	}
}

func TestConcurrentWrites(t *testing.T) {
	rw, err := NewRotatingWriter(filepath.Join(t.TempDir(), LogFileName), RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	logger := NewLogger(rw, LevelInfo)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := logger.WithStep(i)
			for range 50 {
				child.Info("concurrent write")
			}
		}()
	}
	wg.Wait()
	_ = logger.Close()

	content, _ := os.ReadFile(rw.FilePath())
	if got := len(decodeLines(t, content)); got != 500 {
		t.Errorf("got %d entries, want 500", got)
	}
}
