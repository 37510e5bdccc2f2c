package clog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGlobalFunctions(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	ReplaceGlobal(TestLogger(&buf))

	Debug("debug %s", "msg")
	Info("info %s", "msg")
	Warn("warn %s", "msg")
	Error("error %s", "msg")

	output := buf.String()
	for _, want := range []string{"[DEBUG] debug msg", "[INFO] info msg", "[WARN] warn msg", "[ERROR] error msg"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestConfigure(t *testing.T) {
	defer Reset()

	logPath := filepath.Join(t.TempDir(), "test.log")
	SetErrOutput(nil)

	if err := Configure(logPath, LevelDebug, false); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	defer func() { _ = Close() }()

	Debug("test message")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "[DEBUG] test message") {
		t.Errorf("expected message in log file, got: %s", content)
	}
}

func TestConfigureEmptyPath(t *testing.T) {
	defer Reset()

	var errBuf bytes.Buffer
	SetErrOutput(&errBuf)

	if err := Configure("", LevelInfo, true); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	Info("to stderr")
	if !strings.Contains(errBuf.String(), "[INFO] to stderr") {
		t.Errorf("verbose configure should log info to stderr, got %q", errBuf.String())
	}
}

func TestConfigureBadPath(t *testing.T) {
	defer Reset()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// A log path beneath a regular file cannot be created.
	if err := Configure(filepath.Join(file, "x.log"), LevelInfo, false); err == nil {
		t.Error("expected error for unusable log path")
	}
}

func TestDiscard(t *testing.T) {
	defer Reset()
	Discard()

	// These should not panic or produce output
	Debug("test")
	Info("test")
	Warn("test")
	Error("test")
}

func TestConfigureReplacesLogFile(t *testing.T) {
	defer Reset()
	SetErrOutput(nil)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := Configure(first, LevelInfo, false); err != nil {
		t.Fatalf("Configure(first) error = %v", err)
	}
	Info("one")
	if err := Configure(second, LevelInfo, false); err != nil {
		t.Fatalf("Configure(second) error = %v", err)
	}
	defer func() { _ = Close() }()
	Info("two")

	firstData, _ := os.ReadFile(first)
	secondData, _ := os.ReadFile(second)
	if !strings.Contains(string(firstData), "one") || strings.Contains(string(firstData), "two") {
		t.Errorf("first log = %q", firstData)
	}
	if !strings.Contains(string(secondData), "two") {
		t.Errorf("second log = %q", secondData)
	}
}
