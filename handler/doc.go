// Package handler provides the sinks log records are written to.
//
// A Handler pairs a write capability with a minimum-verbosity filter:
// the logger asks ShouldEmit, renders the line, and calls Emit. Every
// variant serializes writes behind a mutex so concurrent log calls
// never interleave the bytes of two lines, and contains its own
// failures; a broken sink returns an error from Emit but never panics
// into the application being observed.
//
// Variants: ConsoleHandler (stdout/stderr, flushed per write),
// FileHandler (append mode, fsync on Error and above), NetworkHandler
// (persistent tcp/udp/unix connection with a bounded write deadline
// and a single redial per emit), SyslogHandler (priority-framed UDP
// datagrams), and MultiHandler (ordered fan-out).
//
// SlogHandler adapts any Handler into a log/slog backend; ZapCore
// does the same for go.uber.org/zap.
package handler
