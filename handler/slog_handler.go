package handler

import (
	"context"
	"log/slog"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// lager Handler, so the library can serve as a log/slog backend.
type SlogHandler struct {
	handler Handler
	name    string
	attrs   []core.Field
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given Handler.
// The name becomes the record's logger name.
func NewSlogHandler(h Handler, name string) *SlogHandler {
	return &SlogHandler{
		handler: h,
		name:    name,
	}
}

// Enabled reports whether the wrapped handler admits records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.handler.ShouldEmit(slogVerbosity(level))
}

// Handle converts a slog.Record to a core.Record, renders it, and
// passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	r := core.NewRecord()
	defer core.FreeRecord(r)

	if !record.Time.IsZero() {
		r.Time = record.Time
	}
	r.Verbosity = slogVerbosity(record.Level)
	r.Name = s.name
	r.Message = record.Message

	// Add pre-configured attrs
	if len(s.attrs) > 0 {
		r.Context = append(r.Context, s.attrs...)
	}

	// Add record attrs
	record.Attrs(func(a slog.Attr) bool {
		r.Context = append(r.Context, slogAttrToField(s.group, a))
		return true
	})

	if !s.handler.ShouldEmit(r.Verbosity) {
		return nil
	}

	line, err := FormatterFor(s.handler, formatter.Default()).Format(r)
	if err != nil {
		return err
	}
	return s.handler.Emit(r, line)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, slogAttrToField(s.group, a))
	}
	return &SlogHandler{
		handler: s.handler,
		name:    s.name,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]core.Field, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		handler: s.handler,
		name:    s.name,
		attrs:   newAttrs,
		group:   newGroup,
	}
}

// slogVerbosity converts a slog.Level to a core.Verbosity.
func slogVerbosity(level slog.Level) core.Verbosity {
	switch {
	case level >= slog.LevelError:
		return core.Error
	case level >= slog.LevelWarn:
		return core.Warning
	case level >= slog.LevelInfo:
		return core.Info
	default:
		return core.Debug
	}
}

// slogAttrToField converts a slog.Attr to a core.Field, prepending the group prefix if present.
func slogAttrToField(group string, a slog.Attr) core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return core.Field{Key: key, Type: core.StringType, Str: a.Value.String()}
	case slog.KindInt64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()}
	case slog.KindFloat64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()}
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: val}
	case slog.KindTime:
		return core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()}
	case slog.KindDuration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()}
	}
}
