package logger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
	"github.com/lagerlog/lager/handler"
)

// Logger is the caller-facing entry point. A log call builds one
// Record, then for each attached handler in attachment order renders
// the line with the handler's formatter override or the logger's
// default template and emits it. The call is synchronous; it returns
// once every admitting handler has written.
//
// The logger itself carries no minimum verbosity. Filtering is the
// handlers' job, each against its own threshold.
type Logger struct {
	name          string
	template      *formatter.Template
	context       []core.Field
	location      *time.Location
	captureCaller bool
	callerSkip    int
	coarseClock   bool

	mu       sync.RWMutex
	handlers []handler.Handler
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	template      *formatter.Template
	context       []core.Field
	handlers      []handler.Handler
	location      *time.Location
	captureCaller bool
	callerSkip    int
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		template:      formatter.Default(),
		location:      time.UTC,
		captureCaller: true,
		callerSkip:    3, // CaptureCallsite <- log <- level method <- caller
	}
}

// WithName sets the logger name, rendered by the {name} placeholder
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandlers attaches handlers in the given order
func (b *Builder) WithHandlers(hs ...handler.Handler) *Builder {
	b.handlers = append(b.handlers, hs...)
	return b
}

// WithTemplate sets the default template. Compile the template with
// formatter.NewTemplate so malformed formats fail at construction.
func (b *Builder) WithTemplate(t *formatter.Template) *Builder {
	if t != nil {
		b.template = t
	}
	return b
}

// WithContext adds fields merged into every record. Lazy fields are
// re-evaluated on each log call.
func (b *Builder) WithContext(fields ...core.Field) *Builder {
	b.context = append(b.context, fields...)
	return b
}

// WithLocation sets the timezone the {time} placeholder renders in
// (default: UTC)
func (b *Builder) WithLocation(loc *time.Location) *Builder {
	if loc != nil {
		b.location = loc
	}
	return b
}

// WithCaller toggles callsite capture for {source}, {function},
// {line}, and {module} (default: enabled)
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.captureCaller = enabled
	return b
}

// WithCallerSkip adjusts the stack frames skipped when capturing the
// callsite, for callers that wrap the logger in their own helper
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// WithCoarseClock uses the cached 500µs clock for record timestamps
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	return &Logger{
		name:          b.name,
		template:      b.template,
		context:       b.context,
		handlers:      b.handlers,
		location:      b.location,
		captureCaller: b.captureCaller,
		callerSkip:    b.callerSkip,
		coarseClock:   b.coarseClock,
	}
}

// With creates a child logger with additional context fields. The
// child starts with a snapshot of the parent's handlers.
func (l *Logger) With(fields ...core.Field) *Logger {
	newContext := make([]core.Field, len(l.context)+len(fields))
	copy(newContext, l.context)
	copy(newContext[len(l.context):], fields)

	return &Logger{
		name:          l.name,
		template:      l.template,
		context:       newContext,
		handlers:      l.snapshot(),
		location:      l.location,
		captureCaller: l.captureCaller,
		callerSkip:    l.callerSkip,
		coarseClock:   l.coarseClock,
	}
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// AttachHandler appends a handler to the dispatch order.
func (l *Logger) AttachHandler(h handler.Handler) {
	if h == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// Copy-on-write so in-flight log calls keep a consistent snapshot
	next := make([]handler.Handler, len(l.handlers)+1)
	copy(next, l.handlers)
	next[len(l.handlers)] = h
	l.handlers = next
}

// DetachHandler removes a previously attached handler. It reports
// whether the handler was found. The handler is not closed.
func (l *Logger) DetachHandler(h handler.Handler) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, attached := range l.handlers {
		if attached == h {
			next := make([]handler.Handler, 0, len(l.handlers)-1)
			next = append(next, l.handlers[:i]...)
			next = append(next, l.handlers[i+1:]...)
			l.handlers = next
			return true
		}
	}
	return false
}

// Handlers returns a snapshot of the attached handlers in dispatch order.
func (l *Logger) Handlers() []handler.Handler {
	return l.snapshot()
}

// snapshot reads the handler list under the lock. The slice is
// immutable once published; mutations swap in a fresh copy.
func (l *Logger) snapshot() []handler.Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handlers
}

// Log logs a message at the given verbosity. Call-time fields shadow
// logger context and built-in placeholders of the same key.
func (l *Logger) Log(v core.Verbosity, msg string, fields ...core.Field) {
	l.log(v, msg, fields, 0)
}

// log builds the record and fans it out to the handlers
func (l *Logger) log(v core.Verbosity, msg string, fields []core.Field, extraSkip int) {
	handlers := l.snapshot()

	// Exit early BEFORE building the record when nothing admits it
	admitted := false
	for _, h := range handlers {
		if h.ShouldEmit(v) {
			admitted = true
			break
		}
	}
	if !admitted {
		return
	}

	r := core.NewRecord()
	if l.coarseClock {
		r.Time = core.CoarseNow()
	}
	r.Time = r.Time.In(l.location)
	r.Verbosity = v
	r.Name = l.name
	r.Message = msg
	if l.captureCaller {
		r.Caller = core.CaptureCallsite(l.callerSkip + extraSkip)
	}

	// Logger context first, call-time fields after, so the newest-first
	// resolution in Record.Resolve gives call-time fields precedence.
	for _, f := range l.context {
		r.Context = append(r.Context, core.Materialize(f))
	}
	for _, f := range fields {
		r.Context = append(r.Context, core.Materialize(f))
	}

	for _, h := range handlers {
		if !h.ShouldEmit(v) {
			continue
		}
		line, err := handler.FormatterFor(h, l.template).Format(r)
		if err != nil {
			// A bad template fails this handler only; dispatch continues.
			core.Fallback("format", err)
			continue
		}
		if err := h.Emit(r, line); err != nil {
			core.Fallback("emit", err)
		}
	}

	core.FreeRecord(r)
}

// Debug logs a message at Debug verbosity
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.log(core.Debug, msg, fields, 0)
}

// Info logs a message at Info verbosity
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.log(core.Info, msg, fields, 0)
}

// Warning logs a message at Warning verbosity
func (l *Logger) Warning(msg string, fields ...core.Field) {
	l.log(core.Warning, msg, fields, 0)
}

// Error logs a message at Error verbosity
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.log(core.Error, msg, fields, 0)
}

// Debugf logs a formatted message at Debug verbosity
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(core.Debug, fmt.Sprintf(format, args...), nil, 0)
}

// Infof logs a formatted message at Info verbosity
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(core.Info, fmt.Sprintf(format, args...), nil, 0)
}

// Warningf logs a formatted message at Warning verbosity
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.log(core.Warning, fmt.Sprintf(format, args...), nil, 0)
}

// Errorf logs a formatted message at Error verbosity
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(core.Error, fmt.Sprintf(format, args...), nil, 0)
}

// CaptureError logs a caught error value at Exception verbosity,
// dispatched exactly like any other record. A nil error is a no-op,
// so callers can report unconditionally from a cleanup path.
func (l *Logger) CaptureError(err error, fields ...core.Field) {
	if err == nil {
		return
	}
	l.log(core.Exception, err.Error(), fields, 0)
}

// Close closes every attached handler, aggregating their errors.
func (l *Logger) Close() error {
	var err error
	for _, h := range l.snapshot() {
		err = multierr.Append(err, h.Close())
	}
	return err
}
