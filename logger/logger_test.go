package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNamedWithNilBase(t *testing.T) {
	l := Named(nil, "store")
	if l == nil {
		t.Fatal("expected a no-op logger, got nil")
	}
	l.Info("discarded")
}

func TestNewBuildsLogger(t *testing.T) {
	l, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled")
	}
}
