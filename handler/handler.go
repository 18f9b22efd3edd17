package handler

import (
	"sync"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// Handler is a sink plus a minimum-verbosity filter. The logger
// renders a line for each handler that admits the record's verbosity
// and hands it to Emit.
type Handler interface {
	// ShouldEmit reports whether the handler admits the verbosity
	ShouldEmit(v core.Verbosity) bool

	// Emit writes the rendered line, newline-terminated, to the sink.
	// Emit must contain failures: it returns an error but never panics.
	Emit(r *core.Record, line []byte) error

	// Close releases the handler's sink resource
	Close() error
}

// FormatterProvider is an optional interface for handlers that carry
// their own formatter, overriding the logger's default template.
type FormatterProvider interface {
	Formatter() formatter.Formatter
}

// FormatterFor resolves the formatter to render a record with for the
// given handler: the handler's own override when it has one, the
// fallback otherwise.
func FormatterFor(h Handler, fallback formatter.Formatter) formatter.Formatter {
	if p, ok := h.(FormatterProvider); ok {
		if f := p.Formatter(); f != nil {
			return f
		}
	}
	return fallback
}

// sink is the shared base embedded by every handler variant: the
// minimum verbosity, an optional formatter override, a mutex
// serializing writes so two lines never interleave bytes, and
// emit counters.
type sink struct {
	min   core.Verbosity
	fmtr  formatter.Formatter
	mu    sync.Mutex
	stats Stats
}

// ShouldEmit reports whether the verbosity clears the threshold.
func (s *sink) ShouldEmit(v core.Verbosity) bool {
	return v >= s.min
}

// MinVerbosity returns the handler's threshold.
func (s *sink) MinVerbosity() core.Verbosity {
	return s.min
}

// Formatter returns the handler's formatter override, nil when the
// handler defers to the logger's default template.
func (s *sink) Formatter() formatter.Formatter {
	return s.fmtr
}

// Stats returns a snapshot of the handler's emit counters.
func (s *sink) Stats() Snapshot {
	return s.stats.GetSnapshot()
}

// terminate returns the line with exactly one trailing newline. The
// line comes from a Formatter, which always returns a fresh slice, so
// appending in place is safe.
func terminate(line []byte) []byte {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}
	return line
}
