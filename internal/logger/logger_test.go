package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, configDir string) string {
	t.Helper()
	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	info, err := os.Stat(filepath.Join(configDir, "logs"))
	if err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("log directory mode = %v, want 0700", perm)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
}

func TestWarnLevelFiltersDebug(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	Warn("coach request failed", KeyOp, "quote", KeyError, errors.New("timeout"))
	Debug("suppressed at warn level")
	Info("also suppressed")

	content := readLog(t, configDir)
	for _, want := range []string{"coach request failed", "op=quote", "error=timeout", "prefix=momentum"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q, got %q", want, content)
		}
	}
	for _, unwanted := range []string{"suppressed at warn level", "also suppressed"} {
		if strings.Contains(content, unwanted) {
			t.Errorf("log file contains %q at warn level", unwanted)
		}
	}
}

func TestDebugMirrorsToStderr(t *testing.T) {
	configDir := t.TempDir()
	var stderr bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: configDir, Stderr: &stderr}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("applied migration", KeyVersion, 2)

	if !strings.Contains(stderr.String(), "applied migration") {
		t.Errorf("stderr = %q, want the debug line", stderr.String())
	}
	if !strings.Contains(readLog(t, configDir), "version=2") {
		t.Error("debug line not written to the log file")
	}
}

func TestWithAddsFields(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Close() })

	log := With(KeyComponent, "backup")
	log.Warn("rotation failed", KeyPath, "/tmp/x.db")
	log.Warn("second line")

	content := readLog(t, configDir)
	if n := strings.Count(content, "component=backup"); n != 2 {
		t.Errorf("component field on %d lines, want 2:\n%s", n, content)
	}
	if !strings.Contains(content, "path=/tmp/x.db") {
		t.Errorf("call-site field missing:\n%s", content)
	}
}

func TestFieldsDoNotShareBacking(t *testing.T) {
	base := make(Fields, 2, 8)
	base[0], base[1] = KeyComponent, "coach"

	a := base.merge([]any{KeyOp, "quote"})
	b := base.merge([]any{KeyOp, "summary"})
	if a[3] != "quote" || b[3] != "summary" {
		t.Errorf("merged fields overwrote each other: %v %v", a, b)
	}
}

func TestCloseMakesLoggingNoOp(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// None of these may panic once the logger is gone.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	With(KeyComponent, "x").Warn("scoped")
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/momentum")
	want := filepath.Join("/tmp/momentum", "logs", "momentum.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}
