package handler

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// defaultWriteTimeout bounds every network write so a stalled peer
// fails the emit instead of hanging the caller.
const defaultWriteTimeout = 10 * time.Second

// NetworkHandler writes lines over a persistent stream or datagram
// connection. The connection is opened at construction, so an
// unreachable target is a construction error.
//
// Reconnection policy: a failed write drops the connection, redials
// once within the same emit, and retries the write. If that also
// fails the record is dropped and Emit returns the error; the next
// emit starts with a fresh dial. Failures never panic into the
// caller.
type NetworkHandler struct {
	sink
	network string
	address string
	timeout time.Duration
	conn    net.Conn // guarded by sink.mu
}

// NetworkConfig holds configuration for network handler
type NetworkConfig struct {
	// Network is the dial network: tcp, tcp4, tcp6, udp, udp4, udp6, unix, unixgram
	Network string
	// Address is the dial address, host:port for tcp/udp, a path for unix
	Address string
	// MinVerbosity is the handler's threshold (default: Debug, emit everything)
	MinVerbosity core.Verbosity
	// Formatter overrides the logger's default template (optional)
	Formatter formatter.Formatter
	// WriteTimeout bounds each write (default: 10s)
	WriteTimeout time.Duration
}

// NewNetworkHandler creates a new network handler and dials the
// target immediately.
func NewNetworkHandler(cfg NetworkConfig) (*NetworkHandler, error) {
	switch cfg.Network {
	case "tcp", "tcp4", "tcp6", "udp", "udp4", "udp6", "unix", "unixgram":
	default:
		return nil, fmt.Errorf("network handler: unsupported network %q", cfg.Network)
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("network handler: address is required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	conn, err := net.Dial(cfg.Network, cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("network handler: %w", err)
	}

	return &NetworkHandler{
		sink:    sink{min: cfg.MinVerbosity, fmtr: cfg.Formatter},
		network: cfg.Network,
		address: cfg.Address,
		timeout: cfg.WriteTimeout,
		conn:    conn,
	}, nil
}

// NewTCPHandler creates a network handler over a persistent TCP
// connection. IPv6 hosts are passed as literals, e.g. "::1".
func NewTCPHandler(host string, port int, min core.Verbosity) (*NetworkHandler, error) {
	addr, err := hostPort(host, port)
	if err != nil {
		return nil, err
	}
	return NewNetworkHandler(NetworkConfig{Network: "tcp", Address: addr, MinVerbosity: min})
}

// NewUDPHandler creates a network handler sending one datagram per line.
func NewUDPHandler(host string, port int, min core.Verbosity) (*NetworkHandler, error) {
	addr, err := hostPort(host, port)
	if err != nil {
		return nil, err
	}
	return NewNetworkHandler(NetworkConfig{Network: "udp", Address: addr, MinVerbosity: min})
}

// NewUnixHandler creates a network handler over a unix stream socket.
func NewUnixHandler(path string, min core.Verbosity) (*NetworkHandler, error) {
	return NewNetworkHandler(NetworkConfig{Network: "unix", Address: path, MinVerbosity: min})
}

func hostPort(host string, port int) (string, error) {
	if host == "" {
		return "", fmt.Errorf("network handler: host is required")
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("network handler: port %d out of range", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// Address returns the dial target.
func (h *NetworkHandler) Address() string {
	return h.address
}

// Emit writes the line plus a trailing newline over the connection.
func (h *NetworkHandler) Emit(_ *core.Record, line []byte) error {
	line = terminate(line)

	h.mu.Lock()
	err := h.write(line)
	if err != nil {
		core.Fallback("network handler", err)
		h.dropConn()
		// One redial, one retry, then the record is dropped.
		if redialErr := h.redial(); redialErr == nil {
			err = h.write(line)
			if err != nil {
				h.dropConn()
			}
		}
	}
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementEmitted()
	return nil
}

// write performs one deadline-bounded write. Caller holds mu.
func (h *NetworkHandler) write(line []byte) error {
	if h.conn == nil {
		if err := h.redial(); err != nil {
			return err
		}
	}
	if err := h.conn.SetWriteDeadline(time.Now().Add(h.timeout)); err != nil {
		return err
	}
	_, err := h.conn.Write(line)
	return err
}

// redial re-establishes the connection. Caller holds mu.
func (h *NetworkHandler) redial() error {
	conn, err := net.Dial(h.network, h.address)
	if err != nil {
		return err
	}
	h.conn = conn
	return nil
}

// dropConn closes and forgets the connection. Caller holds mu.
func (h *NetworkHandler) dropConn() {
	if h.conn != nil {
		_ = h.conn.Close()
		h.conn = nil
	}
}

// Close releases the connection.
func (h *NetworkHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}
