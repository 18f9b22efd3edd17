package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType discriminates which value slot a Field uses.
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
	// LazyType marks a deferred value: Any holds a func() any that is
	// invoked once, at record construction.
	LazyType
)

// Field is one key-value pair of log context.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     any
}

// StringValue returns the display form of the field's value.
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	case LazyType:
		return Materialize(f).StringValue()
	default:
		return ""
	}
}

// Materialize resolves a lazy field by invoking its provider and
// returns the resulting concrete field. Non-lazy fields are returned
// unchanged. A lazy field with a nil provider materializes to an
// empty value rather than panicking.
func Materialize(f Field) Field {
	if f.Type != LazyType {
		return f
	}
	fn, ok := f.Any.(func() any)
	if !ok || fn == nil {
		return Field{Key: f.Key, Type: AnyType, Any: ""}
	}
	return Field{Key: f.Key, Type: AnyType, Any: fn()}
}
