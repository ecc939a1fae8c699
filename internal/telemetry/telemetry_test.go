package telemetry

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
)

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile("")
	if err != nil || w != io.Discard {
		t.Errorf("OpenLogFile(\"\") = %v, %v, want io.Discard", w, err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "game.log")
	w, closeFn, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}
	NewLogger(w, 0).Info("hello", "level", "duel")
	if err := closeFn(); err != nil {
		t.Fatalf("close() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "duel") {
		t.Errorf("log file = %q, want the message and its values", data)
	}
}

func TestNewLoggerVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, 0)

	log.V(1).Info("hidden")
	log.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("log output = %q, want only V(0) messages", buf.String())
	}
}

func TestDisableRecordsNothing(t *testing.T) {
	Disable(logr.Discard())

	_, span := Tracer("test").Start(context.Background(), "noop")
	defer span.End()

	if span.IsRecording() {
		t.Error("span.IsRecording() = true with telemetry disabled")
	}
}
