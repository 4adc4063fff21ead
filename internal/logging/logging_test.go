package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Debug", func(t *testing.T) {
		logger, err := New("debug", true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("Expected debug logs to be enabled")
		}
	})

	t.Run("Info", func(t *testing.T) {
		logger, err := New("info", false)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("Expected debug logs to be disabled")
		}
	})

	t.Run("UnknownLevel", func(t *testing.T) {
		if _, err := New("loud", false); err == nil {
			t.Fatal("Expected an error for an unknown level, got nil")
		}
	})
}
