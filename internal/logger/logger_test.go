package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("document loaded", "cells", 3)

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("expected debug level, got %q", out)
	}
	if !strings.Contains(out, `msg="document loaded"`) || !strings.Contains(out, "cells=3") {
		t.Errorf("expected message and attribute, got %q", out)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()
	t.Setenv(LevelEnv, "")

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden too")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarn_AlwaysShown(t *testing.T) {
	defer reset()
	t.Setenv(LevelEnv, "")

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("store slow", "ms", 250)

	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestLevelFromEnv(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Setenv(LevelEnv, "info")
	SetVerbose(false)

	Info("visible")
	Debug("still hidden")

	out := buf.String()
	if !strings.Contains(out, "visible") {
		t.Errorf("expected info output, got %q", out)
	}
	if strings.Contains(out, "still hidden") {
		t.Errorf("unexpected debug output %q", out)
	}
}

func TestWith_AddsComponent(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	With("sqlite").Warn("retrying")

	if !strings.Contains(buf.String(), "component=sqlite") {
		t.Errorf("expected component attribute, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Resolve")

	if !strings.Contains(buf.String(), "=== Resolve ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}
