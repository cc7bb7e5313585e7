package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")
	log.Info().Str("task_id", "1").Msg("Task created")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["service"] != ServiceName {
		t.Errorf("Expected service field, got %v", line["service"])
	}
	if line["task_id"] != "1" {
		t.Errorf("Expected task_id field, got %v", line["task_id"])
	}
	if _, ok := line["time"]; !ok {
		t.Error("Expected timestamp field")
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")
	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Info should be filtered at warn level, got %q", buf.String())
	}
	log.Warn().Msg("shown")
	if buf.Len() == 0 {
		t.Error("Warn should be written at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
