package handler

import (
	"go.uber.org/multierr"

	"github.com/lagerlog/lager/core"
)

// MultiHandler fans one record out to several handlers in order. It
// lets a single attachment point, such as the slog adapter or the
// zap bridge, feed more than one sink.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// ShouldEmit reports whether any child admits the verbosity.
func (h *MultiHandler) ShouldEmit(v core.Verbosity) bool {
	for _, child := range h.handlers {
		if child.ShouldEmit(v) {
			return true
		}
	}
	return false
}

// Emit passes the line to every child that admits the record's
// verbosity. A child carrying its own formatter gets the record
// re-rendered through it instead of the shared line. One child's
// failure never stops the others; the last error is returned.
func (h *MultiHandler) Emit(r *core.Record, line []byte) error {
	var lastErr error
	for _, child := range h.handlers {
		if !child.ShouldEmit(r.Verbosity) {
			continue
		}
		childLine := line
		if p, ok := child.(FormatterProvider); ok {
			if f := p.Formatter(); f != nil {
				var err error
				childLine, err = f.Format(r)
				if err != nil {
					core.Fallback("multi handler", err)
					lastErr = err
					continue
				}
			}
		}
		if err := child.Emit(r, childLine); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close closes all children, aggregating their errors.
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}
