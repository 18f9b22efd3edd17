package benchmark

import (
	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) ShouldEmit(core.Verbosity) bool {
	return true
}

func (h *noopHandler) Emit(_ *core.Record, line []byte) error {
	_ = len(line)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
