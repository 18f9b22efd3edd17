package handler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

func TestSlogHandler_Basic(t *testing.T) {
	var buf bytes.Buffer
	ch := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.MustTemplate("{verbosity} {name}: {message}"),
	})

	log := slog.New(NewSlogHandler(ch, "slog-app"))
	log.Info("hello from slog")

	got := buf.String()
	if got != "INFO slog-app: hello from slog\n" {
		t.Errorf("Expected rendered line, got: %q", got)
	}
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  core.Verbosity
	}{
		{slog.LevelDebug, core.Debug},
		{slog.LevelInfo, core.Info},
		{slog.LevelWarn, core.Warning},
		{slog.LevelError, core.Error},
		{slog.LevelError + 4, core.Error},
	}

	for _, tt := range tests {
		if got := slogVerbosity(tt.level); got != tt.want {
			t.Errorf("slogVerbosity(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	ch := NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}, MinVerbosity: core.Warning})
	s := NewSlogHandler(ch, "app")

	if s.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected Debug disabled for Warning threshold")
	}
	if !s.Enabled(context.Background(), slog.LevelError) {
		t.Error("Expected Error enabled for Warning threshold")
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	ch := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.MustTemplate("{message} service={service} status={status}"),
	})

	log := slog.New(NewSlogHandler(ch, "app")).With(slog.String("service", "api"))
	log.Info("request done", slog.Int("status", 200))

	got := buf.String()
	if got != "request done service=api status=200\n" {
		t.Errorf("Expected attrs resolved as placeholders, got: %q", got)
	}
}

func TestSlogHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	ch := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.MustTemplate("{message} {http.status}"),
	})

	log := slog.New(NewSlogHandler(ch, "app")).WithGroup("http")
	log.Info("done", slog.Int("status", 200))

	got := buf.String()
	if !strings.Contains(got, "done 200") {
		t.Errorf("Expected group-prefixed attr, got: %q", got)
	}
}
