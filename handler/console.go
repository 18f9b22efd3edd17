package handler

import (
	"io"
	"os"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// ConsoleHandler writes lines to a fixed stream, stdout or stderr,
// chosen at construction. Every write is flushed immediately when the
// writer supports it; log output must be visible right away, not
// batched.
type ConsoleHandler struct {
	sink
	writer  io.Writer
	flusher interface{ Flush() error }
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// MinVerbosity is the handler's threshold (default: Debug, emit everything)
	MinVerbosity core.Verbosity
	// Formatter overrides the logger's default template (optional)
	Formatter formatter.Formatter
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	h := &ConsoleHandler{
		sink:   sink{min: cfg.MinVerbosity, fmtr: cfg.Formatter},
		writer: cfg.Writer,
	}
	h.flusher, _ = cfg.Writer.(interface{ Flush() error })
	return h
}

// NewStdoutHandler creates a console handler on os.Stdout.
func NewStdoutHandler(min core.Verbosity) *ConsoleHandler {
	return NewConsoleHandler(ConsoleConfig{Writer: os.Stdout, MinVerbosity: min})
}

// NewStderrHandler creates a console handler on os.Stderr.
func NewStderrHandler(min core.Verbosity) *ConsoleHandler {
	return NewConsoleHandler(ConsoleConfig{Writer: os.Stderr, MinVerbosity: min})
}

// Emit writes the line plus a trailing newline to the stream.
func (h *ConsoleHandler) Emit(_ *core.Record, line []byte) error {
	h.mu.Lock()
	_, err := h.writer.Write(terminate(line))
	if err == nil && h.flusher != nil {
		err = h.flusher.Flush()
	}
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementEmitted()
	return nil
}

// Close flushes the stream. The stream itself is not owned by the
// handler (closing os.Stdout would be hostile), so it stays open.
func (h *ConsoleHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.flusher != nil {
		return h.flusher.Flush()
	}
	return nil
}
