package handler

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// FileHandler appends lines to a file. The file is opened in append
// mode at construction and owned by the handler until Close. Records
// at Error verbosity or above are fsynced so the last lines survive
// an abrupt process exit.
type FileHandler struct {
	sink
	path       string
	file       *os.File
	syncWrites bool
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Path is the log file path (required)
	Path string
	// MinVerbosity is the handler's threshold (default: Debug, emit everything)
	MinVerbosity core.Verbosity
	// Formatter overrides the logger's default template (optional)
	Formatter formatter.Formatter
	// SyncWrites forces an fsync after every write, not just Error and above
	SyncWrites bool
}

// NewFileHandler creates a new file handler. An empty path or an
// unopenable file is a construction error, never deferred to the
// first log call.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file handler: path is required")
	}

	// Create directory if it doesn't exist
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("file handler: %w", err)
		}
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("file handler: %w", err)
	}

	return &FileHandler{
		sink:       sink{min: cfg.MinVerbosity, fmtr: cfg.Formatter},
		path:       cfg.Path,
		file:       file,
		syncWrites: cfg.SyncWrites,
	}, nil
}

// Path returns the log file path.
func (h *FileHandler) Path() string {
	return h.path
}

// Emit appends the line plus a trailing newline to the file.
func (h *FileHandler) Emit(r *core.Record, line []byte) error {
	h.mu.Lock()
	_, err := h.file.Write(terminate(line))
	if err == nil && (h.syncWrites || r.Verbosity >= core.Error) {
		err = h.file.Sync()
	}
	h.mu.Unlock()

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementEmitted()
	return nil
}

// Sync flushes the file to stable storage.
func (h *FileHandler) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Sync()
}

// Close syncs and releases the file descriptor.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return multierr.Append(h.file.Sync(), h.file.Close())
}
