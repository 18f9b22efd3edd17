package core

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestFallback(t *testing.T) {
	var buf bytes.Buffer
	SetFallbackOutput(&buf)
	defer SetFallbackOutput(os.Stderr)

	Fallback("file handler", errors.New("disk full"))

	got := buf.String()
	if got != "lager: file handler: disk full\n" {
		t.Errorf("Expected meta-warning line, got: %q", got)
	}
}

func TestFallback_NilError(t *testing.T) {
	var buf bytes.Buffer
	SetFallbackOutput(&buf)
	defer SetFallbackOutput(os.Stderr)

	Fallback("noop", nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output for nil error, got: %q", buf.String())
	}
}

func TestSetFallbackOutput_Nil(t *testing.T) {
	SetFallbackOutput(nil)
	defer SetFallbackOutput(os.Stderr)

	// Must not panic
	Fallback("component", errors.New("dropped"))
}

func TestFallback_SuppressedOutput(t *testing.T) {
	var buf bytes.Buffer
	SetFallbackOutput(&buf)
	defer SetFallbackOutput(os.Stderr)

	Fallback("a", errors.New("one"))
	Fallback("b", errors.New("two"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}
