package core

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Callsite identifies the source location of the log call that
// produced a record. Source is the base file name, Module the
// caller's package name, Function the bare function name.
type Callsite struct {
	Source   string
	Function string
	Module   string
	Line     int
	Defined  bool
}

// Record is an immutable snapshot of one log event. It is created
// once per log call, handed to every admitting handler, and then
// discarded (returned to the pool).
type Record struct {
	Time      time.Time
	Verbosity Verbosity
	Name      string
	Message   string
	Caller    Callsite
	PID       int
	Context   []Field
}

// recordPool reuses Record objects across log calls to keep the hot
// path allocation-free.
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Context: make([]Field, 0, 8), // Pre-allocate for 8 context fields
		}
	},
}

// NewRecord retrieves a Record from the pool with the current time
// and the process PID already set.
func NewRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	r.PID = pid
	r.Context = r.Context[:0]
	r.Caller = Callsite{}
	return r
}

// FreeRecord returns a Record to the pool. The caller must not touch
// the record afterwards.
func FreeRecord(r *Record) {
	if r == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	r.Context = r.Context[:0]
	r.Name = ""
	r.Message = ""
	r.Caller = Callsite{}
	recordPool.Put(r)
}

// pid is captured once; it cannot change within a process.
var pid = os.Getpid()

// PID returns the current process id.
func PID() int {
	return pid
}

// CaptureCallsite inspects the call stack and returns the caller's
// location. skip counts the stack frames between CaptureCallsite and
// the frame to report, so skip must cover exactly the logging
// library's own frames.
func CaptureCallsite(skip int) Callsite {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Callsite{}
	}

	var module, function string
	if fn := runtime.FuncForPC(pc); fn != nil {
		module, function = splitFuncName(fn.Name())
	}

	return Callsite{
		Source:   filepath.Base(file),
		Function: function,
		Module:   module,
		Line:     line,
		Defined:  true,
	}
}

// splitFuncName splits a runtime function name like
// "github.com/acme/app/server.(*Mux).Serve" into the package name
// ("server") and the bare function name ("(*Mux).Serve").
func splitFuncName(full string) (module, function string) {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.IndexByte(full, '.'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}

// Resolve looks up a template placeholder against the record.
// Context fields are scanned newest-first so call-time overrides win
// over logger context, and both shadow the built-in vocabulary
// (time, verbosity, name, message, source, function, line, module,
// pid). Only a key that is neither in the context nor a built-in
// reports false.
func (r *Record) Resolve(key string) (string, bool) {
	for i := len(r.Context) - 1; i >= 0; i-- {
		if r.Context[i].Key == key {
			return r.Context[i].StringValue(), true
		}
	}

	switch key {
	case "time":
		return r.Time.Format(time.RFC3339), true
	case "verbosity":
		return r.Verbosity.String(), true
	case "name":
		return r.Name, true
	case "message":
		return r.Message, true
	case "source":
		return r.Caller.Source, true
	case "function":
		return r.Caller.Function, true
	case "module":
		return r.Caller.Module, true
	case "line":
		if !r.Caller.Defined {
			return "", true
		}
		return strconv.Itoa(r.Caller.Line), true
	case "pid":
		return strconv.Itoa(r.PID), true
	}
	return "", false
}
