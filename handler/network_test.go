package handler

import (
	"bufio"
	"net"
	"os"
	"testing"
	"time"

	"github.com/lagerlog/lager/core"
)

func TestNewNetworkHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  NetworkConfig
	}{
		{"unsupported network", NetworkConfig{Network: "carrier-pigeon", Address: "x"}},
		{"missing address", NetworkConfig{Network: "tcp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewNetworkHandler(tt.cfg); err == nil {
				t.Error("Expected construction error, got nil")
			}
		})
	}
}

func TestNewTCPHandler_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		if _, err := NewTCPHandler("localhost", port, core.Debug); err == nil {
			t.Errorf("Expected error for port %d, got nil", port)
		}
	}
	if _, err := NewTCPHandler("", 514, core.Debug); err == nil {
		t.Error("Expected error for empty host, got nil")
	}
}

func TestNewNetworkHandler_UnreachableTarget(t *testing.T) {
	// An unreachable target is a construction error, not a surprise
	// on the first log call.
	if _, err := NewNetworkHandler(NetworkConfig{Network: "tcp", Address: "127.0.0.1:1"}); err == nil {
		t.Error("Expected dial error for unreachable target, got nil")
	}
}

func TestNetworkHandler_TCPEmit(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() returned error: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 2)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			received <- scanner.Text()
		}
	}()

	h, err := NewNetworkHandler(NetworkConfig{Network: "tcp", Address: ln.Addr().String()})
	if err != nil {
		t.Fatalf("NewNetworkHandler() returned error: %v", err)
	}
	defer h.Close()

	r := newRecord(core.Info, "hello")
	defer core.FreeRecord(r)

	if err := h.Emit(r, []byte("INFO hello")); err != nil {
		t.Fatalf("Emit() returned error: %v", err)
	}

	select {
	case line := <-received:
		if line != "INFO hello" {
			t.Errorf("Expected 'INFO hello', got: %s", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for line")
	}
}

func TestNetworkHandler_EmitFailureDoesNotPanic(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() returned error: %v", err)
	}
	addr := ln.Addr().String()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	h, err := NewNetworkHandler(NetworkConfig{
		Network:      "tcp",
		Address:      addr,
		WriteTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewNetworkHandler() returned error: %v", err)
	}
	defer h.Close()

	// Tear everything down so both the write and the redial fail
	select {
	case conn := <-accepted:
		conn.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for accept")
	}
	ln.Close()

	core.SetFallbackOutput(os.Stderr)

	r := newRecord(core.Info, "x")
	defer core.FreeRecord(r)

	// The peer is gone; one of the next emits must surface an error
	// without panicking. TCP may buffer the first write.
	var emitErr error
	for i := 0; i < 10 && emitErr == nil; i++ {
		emitErr = h.Emit(r, []byte("after close"))
		time.Sleep(10 * time.Millisecond)
	}
	if emitErr == nil {
		t.Error("Expected emit failure after peer closed, got nil")
	}
	if h.Stats().Failed == 0 {
		t.Error("Expected failed counter to increase")
	}
}

func TestNetworkHandler_UDPEmit(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() returned error: %v", err)
	}
	defer pc.Close()

	h, err := NewNetworkHandler(NetworkConfig{Network: "udp", Address: pc.LocalAddr().String()})
	if err != nil {
		t.Fatalf("NewNetworkHandler() returned error: %v", err)
	}
	defer h.Close()

	r := newRecord(core.Warning, "datagram")
	defer core.FreeRecord(r)

	if err := h.Emit(r, []byte("WARNING datagram")); err != nil {
		t.Fatalf("Emit() returned error: %v", err)
	}

	buf := make([]byte, 1024)
	_ = pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() returned error: %v", err)
	}
	if string(buf[:n]) != "WARNING datagram\n" {
		t.Errorf("Expected newline-terminated datagram, got: %q", string(buf[:n]))
	}
}

func TestNetworkHandler_Address(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket() returned error: %v", err)
	}
	defer pc.Close()

	h, err := NewNetworkHandler(NetworkConfig{Network: "udp", Address: pc.LocalAddr().String()})
	if err != nil {
		t.Fatalf("NewNetworkHandler() returned error: %v", err)
	}
	defer h.Close()

	if h.Address() != pc.LocalAddr().String() {
		t.Errorf("Expected address %s, got: %s", pc.LocalAddr(), h.Address())
	}
}
