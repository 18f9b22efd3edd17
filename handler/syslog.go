package handler

import (
	"bytes"
	"fmt"
	"net"
	"strconv"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// SyslogHandler sends each line as a UDP datagram framed
// "<priority>line\x00", where priority is facility<<3 | severity and
// the severity comes from the record's verbosity. With the default
// facility 0 the frame carries the bare severity.
type SyslogHandler struct {
	sink
	facility int
	address  string
	conn     net.Conn // guarded by sink.mu
}

// SyslogConfig holds configuration for syslog handler
type SyslogConfig struct {
	// Address is the collector's host:port (default: "localhost:514")
	Address string
	// Facility is the syslog facility code, 0 through 23 (default: 0)
	Facility int
	// MinVerbosity is the handler's threshold (default: Debug, emit everything)
	MinVerbosity core.Verbosity
	// Formatter overrides the logger's default template (optional)
	Formatter formatter.Formatter
}

// NewSyslogHandler creates a new syslog handler and dials the
// collector immediately.
func NewSyslogHandler(cfg SyslogConfig) (*SyslogHandler, error) {
	if cfg.Address == "" {
		cfg.Address = "localhost:514"
	}
	if cfg.Facility < 0 || cfg.Facility > 23 {
		return nil, fmt.Errorf("syslog handler: facility %d out of range", cfg.Facility)
	}

	conn, err := net.Dial("udp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("syslog handler: %w", err)
	}

	return &SyslogHandler{
		sink:     sink{min: cfg.MinVerbosity, fmtr: cfg.Formatter},
		facility: cfg.Facility,
		address:  cfg.Address,
		conn:     conn,
	}, nil
}

// Emit sends the line as one priority-framed datagram. Syslog frames
// are NUL-terminated, not newline-terminated.
func (h *SyslogHandler) Emit(r *core.Record, line []byte) error {
	line = bytes.TrimRight(line, "\n")
	pri := h.facility<<3 | r.Verbosity.SyslogPriority()

	frame := make([]byte, 0, len(line)+8)
	frame = append(frame, '<')
	frame = strconv.AppendInt(frame, int64(pri), 10)
	frame = append(frame, '>')
	frame = append(frame, line...)
	frame = append(frame, 0)

	h.mu.Lock()
	_, err := h.conn.Write(frame)
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementEmitted()
	return nil
}

// Close releases the socket.
func (h *SyslogHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn.Close()
}
