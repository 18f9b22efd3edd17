package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lagerlog/lager/core"
)

// DefaultFormat is the template every logger starts with.
const DefaultFormat = "{time} {verbosity} {name}: {message}"

// ErrUnknownPlaceholder is reported when a template references a key
// that is neither a record built-in nor present in the context. A
// malformed template is a configuration bug, so rendering fails
// loudly instead of masking the hole.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// segment is one compiled piece of a template: either literal text
// or a placeholder name to resolve against the record.
type segment struct {
	literal     string
	placeholder string
}

// Template renders records against a format string with named
// placeholders, e.g. "{time} {verbosity} {name}: {message}".
// Literal braces are written {{ and }}. A Template is compiled once
// at construction and is safe for concurrent use.
type Template struct {
	raw      string
	segments []segment
}

// NewTemplate compiles a format string. Malformed templates (an
// unclosed or empty placeholder, a stray closing brace) are
// construction-time errors, never deferred to the first log call.
func NewTemplate(format string) (*Template, error) {
	t := &Template{raw: format}

	var literal strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("template %q: unclosed placeholder at offset %d", format, i)
			}
			name := format[i+1 : i+1+end]
			if name == "" {
				return nil, fmt.Errorf("template %q: empty placeholder at offset %d", format, i)
			}
			if strings.IndexByte(name, '{') >= 0 {
				return nil, fmt.Errorf("template %q: nested brace in placeholder at offset %d", format, i)
			}
			if literal.Len() > 0 {
				t.segments = append(t.segments, segment{literal: literal.String()})
				literal.Reset()
			}
			t.segments = append(t.segments, segment{placeholder: name})
			i += end + 2
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("template %q: stray closing brace at offset %d", format, i)
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		t.segments = append(t.segments, segment{literal: literal.String()})
	}

	return t, nil
}

// MustTemplate compiles a format string and panics on error. Use it
// for templates known valid at compile time.
func MustTemplate(format string) *Template {
	t, err := NewTemplate(format)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTemplate = MustTemplate(DefaultFormat)

// Default returns the shared compiled DefaultFormat template.
func Default() *Template {
	return defaultTemplate
}

// String returns the original format string.
func (t *Template) String() string {
	return t.raw
}

// Format renders a record into one unterminated line.
func (t *Template) Format(r *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := t.formatToBuffer(r, buf); err != nil {
		return nil, err
	}

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders a record and writes it directly to the writer.
func (t *Template) FormatTo(r *core.Record, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := t.formatToBuffer(r, buf); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// formatToBuffer evaluates the compiled segments against the record
func (t *Template) formatToBuffer(r *core.Record, buf *bytes.Buffer) error {
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			buf.WriteString(seg.literal)
			continue
		}
		val, ok := r.Resolve(seg.placeholder)
		if !ok {
			return fmt.Errorf("template %q: %w %q", t.raw, ErrUnknownPlaceholder, seg.placeholder)
		}
		buf.WriteString(val)
	}
	return nil
}
