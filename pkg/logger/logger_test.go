package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Component: "rules", Writer: &buf})

	log.Info().Msg("hidden")
	log.Warn().Str("path", "rules.txt").Msg("rule file not found")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev["level"] != "warn" || ev["component"] != "rules" || ev["path"] != "rules.txt" {
		t.Errorf("event = %v", ev)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Writer: &buf})
	log.Info().Int("rows", 3).Msg("corpus processed")
	out := buf.String()
	if !strings.Contains(out, "corpus processed") || !strings.Contains(out, "rows=3") {
		t.Errorf("console output = %q", out)
	}
}
