package handler

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// ZapCore implements zapcore.Core on top of a lager Handler, so a zap
// front-end can emit through lager sinks. It is the mirror image of
// the slog adapter.
type ZapCore struct {
	handler Handler
	name    string
	fields  []core.Field
}

// NewZapCore creates a zapcore.Core wrapping the given Handler.
func NewZapCore(h Handler, name string) *ZapCore {
	return &ZapCore{
		handler: h,
		name:    name,
	}
}

// Enabled reports whether the wrapped handler admits the level.
func (c *ZapCore) Enabled(level zapcore.Level) bool {
	return c.handler.ShouldEmit(zapVerbosity(level))
}

// With returns a child core carrying the additional fields.
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	newFields := make([]core.Field, len(c.fields), len(c.fields)+len(enc.Fields))
	copy(newFields, c.fields)
	for k, v := range enc.Fields {
		newFields = append(newFields, core.Field{Key: k, Type: core.AnyType, Any: v})
	}

	return &ZapCore{
		handler: c.handler,
		name:    c.name,
		fields:  newFields,
	}
}

// Check adds the core to the checked entry when the level is enabled.
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts a zap entry to a core.Record, renders it, and passes
// it to the wrapped handler.
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	r := core.NewRecord()
	defer core.FreeRecord(r)

	if !ent.Time.IsZero() {
		r.Time = ent.Time
	}
	r.Verbosity = zapVerbosity(ent.Level)
	r.Name = c.name
	if ent.LoggerName != "" {
		r.Name = ent.LoggerName
	}
	r.Message = ent.Message
	if ent.Caller.Defined {
		r.Caller = core.Callsite{
			Source:   filepath.Base(ent.Caller.File),
			Function: zapFunction(ent.Caller.Function),
			Module:   zapModule(ent.Caller.Function),
			Line:     ent.Caller.Line,
			Defined:  true,
		}
	}

	if len(c.fields) > 0 {
		r.Context = append(r.Context, c.fields...)
	}
	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		for k, v := range enc.Fields {
			r.Context = append(r.Context, core.Field{Key: k, Type: core.AnyType, Any: v})
		}
	}

	line, err := FormatterFor(c.handler, formatter.Default()).Format(r)
	if err != nil {
		return err
	}
	return c.handler.Emit(r, line)
}

// Sync forwards to the wrapped handler when it can flush.
func (c *ZapCore) Sync() error {
	if s, ok := c.handler.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// zapVerbosity converts a zapcore.Level to a core.Verbosity. Zap's
// terminal levels map to Error; terminating the process is zap's
// business, not the sink's.
func zapVerbosity(level zapcore.Level) core.Verbosity {
	switch {
	case level <= zapcore.DebugLevel:
		return core.Debug
	case level == zapcore.InfoLevel:
		return core.Info
	case level == zapcore.WarnLevel:
		return core.Warning
	default:
		return core.Error
	}
}

// zapFunction strips the package path from a zap caller function name.
func zapFunction(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.IndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// zapModule extracts the package name from a zap caller function name.
func zapModule(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.IndexByte(full, '.'); i >= 0 {
		return full[:i]
	}
	return ""
}
