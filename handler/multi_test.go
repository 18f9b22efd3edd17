package handler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

func TestMultiHandler_FanOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: &buf1}),
		NewConsoleHandler(ConsoleConfig{Writer: &buf2}),
	)

	r := newRecord(core.Info, "hello")
	defer core.FreeRecord(r)

	if err := m.Emit(r, []byte("hello")); err != nil {
		t.Fatalf("Emit() returned error: %v", err)
	}

	if buf1.String() != "hello\n" {
		t.Errorf("Expected first handler to receive line, got: %q", buf1.String())
	}
	if buf2.String() != "hello\n" {
		t.Errorf("Expected second handler to receive line, got: %q", buf2.String())
	}
}

func TestMultiHandler_ShouldEmit(t *testing.T) {
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}, MinVerbosity: core.Warning}),
		NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}, MinVerbosity: core.Error}),
	)

	if m.ShouldEmit(core.Info) {
		t.Error("Expected Info rejected when no child admits it")
	}
	if !m.ShouldEmit(core.Warning) {
		t.Error("Expected Warning admitted by the first child")
	}
}

func TestMultiHandler_ThresholdsPerChild(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: &debugBuf, MinVerbosity: core.Debug}),
		NewConsoleHandler(ConsoleConfig{Writer: &errorBuf, MinVerbosity: core.Error}),
	)

	r := newRecord(core.Warning, "warn")
	defer core.FreeRecord(r)

	if err := m.Emit(r, []byte("warn")); err != nil {
		t.Fatalf("Emit() returned error: %v", err)
	}

	if debugBuf.Len() == 0 {
		t.Error("Expected the Debug-threshold child to receive the record")
	}
	if errorBuf.Len() != 0 {
		t.Errorf("Expected the Error-threshold child to skip the record, got: %q", errorBuf.String())
	}
}

func TestMultiHandler_ChildFormatterOverride(t *testing.T) {
	var plain, custom bytes.Buffer
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: &plain}),
		NewConsoleHandler(ConsoleConfig{
			Writer:    &custom,
			Formatter: formatter.MustTemplate(">> {message}"),
		}),
	)

	r := newRecord(core.Info, "hello")
	defer core.FreeRecord(r)

	if err := m.Emit(r, []byte("rendered upstream")); err != nil {
		t.Fatalf("Emit() returned error: %v", err)
	}

	if plain.String() != "rendered upstream\n" {
		t.Errorf("Expected shared line for plain child, got: %q", plain.String())
	}
	if custom.String() != ">> hello\n" {
		t.Errorf("Expected re-rendered line for overriding child, got: %q", custom.String())
	}
}

func TestMultiHandler_FailureDoesNotStopOthers(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: failingWriter{}}),
		NewConsoleHandler(ConsoleConfig{Writer: &buf}),
	)

	r := newRecord(core.Info, "hello")
	defer core.FreeRecord(r)

	if err := m.Emit(r, []byte("hello")); err == nil {
		t.Error("Expected the broken child's error to be reported")
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("Expected healthy child to still receive line, got: %q", buf.String())
	}
}

func TestMultiHandler_Close(t *testing.T) {
	m := NewMultiHandler(
		NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}}),
		NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}}),
	)
	if err := m.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}
