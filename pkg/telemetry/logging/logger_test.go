package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"sibr/fed/pkg/config"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("event parsed", "type", "LetsGo")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "event parsed" || entry["type"] != "LetsGo" {
		t.Errorf("got %v", entry)
	}
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("starting")
	if !strings.Contains(buf.String(), "msg=starting") {
		t.Errorf("got %q", buf.String())
	}
}

func TestSetupRejectsUnknownFormat(t *testing.T) {
	if _, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestLevelFiltersAndReloads(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged at info level: %q", buf.String())
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	if Level() != slog.LevelDebug {
		t.Errorf("got level %v", Level())
	}

	logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug not logged after SetLevel")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.input, got, err)
		}
	}
}
