package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"muxcli/internal/config"
	"muxcli/internal/logging"
	"muxcli/internal/services"
)

func TestConsoleLoggerOmitsCallerForWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("filtered out")
	logger.Warn("upload slow", logging.String(logging.FieldFile, "clip one.mp4"))

	out := buf.String()
	if strings.Contains(out, "filtered out") {
		t.Fatalf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN upload slow") {
		t.Fatalf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, `file="clip one.mp4"`) {
		t.Fatalf("expected quoted attribute, got %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information at warn level, got %q", out)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestComponentRendersAsPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "poller").Info("tick", logging.Int("attempt", 2))
	out := buf.String()
	if !strings.Contains(out, "poller: tick") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, "attempt=2") {
		t.Fatalf("expected attempt attribute, got %q", out)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("asset created", logging.String(logging.FieldAssetID, "abc"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry[logging.FieldAssetID] != "abc" {
		t.Fatalf("expected asset id attribute, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	logger, err := logging.NewFromConfig(&cfg, &buf, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output with verbose, got %q", buf.String())
	}
}

func TestWithContextAddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRequestID(context.Background(), "req-42")
	ctx = services.WithStage(ctx, "upload")
	logging.WithContext(ctx, logger).Info("hello")
	out := buf.String()
	if !strings.Contains(out, "correlation_id=req-42") || !strings.Contains(out, "stage=upload") {
		t.Fatalf("expected context fields, got %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing")
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
}
