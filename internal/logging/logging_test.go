// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "arcx.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", data)
	}
}

func TestLogAPICall(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	LogAPICall("get", "/api/puzzle/list", 200, nil)
	if !strings.Contains(buf.String(), "[API] GET /api/puzzle/list -> 200") {
		t.Fatalf("unexpected success log: %s", buf.String())
	}

	buf.Reset()
	LogAPICall("", "/api/metrics/compare", 0, errors.New("connection refused"))
	got := buf.String()
	if !strings.Contains(got, "GET /api/metrics/compare failed") || !strings.Contains(got, "connection refused") {
		t.Fatalf("unexpected failure log: %s", got)
	}
}
