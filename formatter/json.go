package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/lagerlog/lager/core"
)

// JSONFormatter renders records as single-line JSON objects. It can
// be set as any handler's formatter override in place of a template.
type JSONFormatter struct {
	Config
}

// Config holds common JSON formatter configuration
type Config struct {
	// IncludeCaller enables callsite information in the output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &JSONFormatter{Config: cfg}
}

// Format renders a record as JSON
func (f *JSONFormatter) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(r, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders a record as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(r, buf)

	_, err := w.Write(buf.Bytes())
	return err
}

// formatJSONToBuffer builds JSON manually into the buffer without allocations
func (f *JSONFormatter) formatJSONToBuffer(r *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('{')

	buf.WriteString(`"time":"`)
	buf.Write(r.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte('"')

	buf.WriteString(`,"verbosity":"`)
	buf.WriteString(r.Verbosity.String())
	buf.WriteByte('"')

	if r.Name != "" {
		buf.WriteString(`,"name":"`)
		appendJSONString(buf, r.Name)
		buf.WriteByte('"')
	}

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, r.Message)
	buf.WriteByte('"')

	buf.WriteString(`,"pid":`)
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(r.PID), 10))

	if f.IncludeCaller && r.Caller.Defined {
		buf.WriteString(`,"caller":{"source":"`)
		appendJSONString(buf, r.Caller.Source)
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(r.Caller.Line))
		if r.Caller.Function != "" {
			buf.WriteString(`,"function":"`)
			appendJSONString(buf, r.Caller.Function)
			buf.WriteByte('"')
		}
		if r.Caller.Module != "" {
			buf.WriteString(`,"module":"`)
			appendJSONString(buf, r.Caller.Module)
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	for _, field := range r.Context {
		buf.WriteString(`,"`)
		appendJSONString(buf, field.Key)
		buf.WriteString(`":`)
		appendJSONFieldValue(buf, field)
	}

	buf.WriteByte('}')
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer
func appendJSONFieldValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.StringType:
		buf.WriteByte('"')
		appendJSONString(buf, field.Str)
		buf.WriteByte('"')
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.ErrorType:
		buf.WriteByte('"')
		appendJSONString(buf, field.Str)
		buf.WriteByte('"')
	default:
		buf.WriteByte('"')
		appendJSONString(buf, field.StringValue())
		buf.WriteByte('"')
	}
}
