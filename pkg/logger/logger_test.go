package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "report processed", String("author", "dana"), Int("activities", 3))

	out := buf.String()
	if !strings.Contains(out, "report processed") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "author=dana") {
		t.Errorf("output missing field: %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("output missing caller source: %q", out)
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("burnout")
	if named == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	named.Info(ctx, "assessment complete", String("subject", "lee"))

	if out := buf.String(); !strings.Contains(out, "burnout.subject=lee") {
		t.Errorf("named group missing from output: %q", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Debug(ctx, "hidden at info level")
	if strings.Contains(buf.String(), "hidden at info level") {
		t.Error("debug entry emitted at info level")
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Debug(ctx, "visible at debug level")
	if !strings.Contains(buf.String(), "visible at debug level") {
		t.Error("debug entry missing at debug level")
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}

	// Restore for other tests.
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("failed to restore level: %v", err)
	}
}
