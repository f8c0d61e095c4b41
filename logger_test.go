package tex

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/gogpu/tex/backend/software"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger must be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)

	if Logger() != l {
		t.Error("Logger() does not return the configured logger")
	}

	Logger().Debug("probe")
	if buf.Len() == 0 {
		t.Error("configured logger produced no output")
	}

	// nil restores the silent default.
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLoggerReachesDeviceOperations(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dev := software.New()
	propagateLogger(dev, Logger())

	tx, err := New(4, 4, WithDevice(dev))
	if err != nil {
		t.Fatal(err)
	}
	tx.Close()

	if !bytes.Contains(buf.Bytes(), []byte("texture created")) {
		t.Error("device creation log did not reach the configured logger")
	}
}
