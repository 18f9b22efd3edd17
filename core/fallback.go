package core

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	fallbackMu  sync.Mutex
	fallbackOut io.Writer = os.Stderr
)

// SetFallbackOutput redirects the library's own meta-warnings. The
// default is os.Stderr. A nil writer discards them.
func SetFallbackOutput(w io.Writer) {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if w == nil {
		w = io.Discard
	}
	fallbackOut = w
}

// Fallback reports a failure inside the library itself, such as a
// handler that could not write. Logging failures must never crash
// the application being observed, so the error goes to the fallback
// writer as a single line and Fallback itself never fails.
func Fallback(component string, err error) {
	if err == nil {
		return
	}
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	fmt.Fprintf(fallbackOut, "lager: %s: %v\n", component, err)
}
