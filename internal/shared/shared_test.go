package shared

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestApplyLogLevel(t *testing.T) {
	t.Run("sets a known level", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})
		ApplyLogLevel(logger, "debug")
		if logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", logger.GetLevel())
		}
	})

	t.Run("unknown level leaves the logger unchanged", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})
		before := logger.GetLevel()
		ApplyLogLevel(logger, "chatty")
		if logger.GetLevel() != before {
			t.Errorf("expected level unchanged, got %v", logger.GetLevel())
		}
	})

	t.Run("empty name is a no-op", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})
		before := logger.GetLevel()
		ApplyLogLevel(logger, "")
		if logger.GetLevel() != before {
			t.Errorf("expected level unchanged, got %v", logger.GetLevel())
		}
	})
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()
	if first == "" || first == second {
		t.Errorf("expected distinct non-empty ids, got %q and %q", first, second)
	}
	if len(first) != 36 {
		t.Errorf("expected a canonical uuid string, got %q", first)
	}
}
