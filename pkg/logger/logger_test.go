package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAppLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Info("Server listening", "address", ":8080")
	l.Error("Upload failed", errors.New("boom"), "file", "files/abc")
	l.Debug("Polling", "attempt", 2)
	l.Warn("Skipping file", "name", "files/old")

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	if entries[0].Level != zapcore.InfoLevel || entries[0].ContextMap()["address"] != ":8080" {
		t.Fatalf("unexpected info entry: %+v", entries[0])
	}

	errFields := entries[1].ContextMap()
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[1].Level)
	}
	if errFields["error"] != "boom" {
		t.Fatalf("expected error field boom, got %v", errFields["error"])
	}
	if errFields["file"] != "files/abc" {
		t.Fatalf("expected file field, got %v", errFields["file"])
	}

	if entries[2].Level != zapcore.DebugLevel || entries[3].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected levels: %v %v", entries[2].Level, entries[3].Level)
	}
}

func TestAppLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewWithCore(core)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
}

func TestNewLogger(t *testing.T) {
	if NewLogger("debug") == nil {
		t.Fatalf("expected logger")
	}
}
