package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	l, err := New("debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be enabled")
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New("chatty")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled at info")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be enabled")
	}
}
