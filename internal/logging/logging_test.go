package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"warning", log.WarnLevel, false},
		{"", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"chatty", log.WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error: got %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Formatter
		wantErr bool
	}{
		{"", log.TextFormatter, false},
		{"text", log.TextFormatter, false},
		{"json", log.JSONFormatter, false},
		{"Logfmt", log.LogfmtFormatter, false},
		{"xml", log.TextFormatter, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormatter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormatter(%q) error: got %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("saved", "tasks", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "saved") || !strings.Contains(out, "tasks=3") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, DefaultPrefix) {
		t.Errorf("missing prefix %q: %q", DefaultPrefix, out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "debug", Format: "json", Writer: &buf, Prefix: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("skipped invalid task line", "line", 2)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %q: %v", buf.String(), err)
	}
	if entry["msg"] != "skipped invalid task line" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["line"] != float64(2) {
		t.Errorf("line: got %v, want 2", entry["line"])
	}
}

func TestNewLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taskline.log")
	var fallback bytes.Buffer

	logger, closer, err := New(Options{Level: "info", File: path, Writer: &fallback})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content: %q", data)
	}
	if fallback.Len() != 0 {
		t.Errorf("fallback writer should be unused, got %q", fallback.String())
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for bad level")
	}
	if _, _, err := New(Options{Format: "yaml"}); err == nil {
		t.Error("expected error for bad format")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anywhere.
	Discard().Error("nothing", "k", "v")
}
