package core

import (
	"fmt"
	"strings"
)

// Verbosity is the severity attached to a Record and the minimum
// threshold each handler filters by. Values are totally ordered:
// Debug < Info < Warning < Error < Exception.
type Verbosity int8

const (
	// Debug for detailed diagnostic output.
	Debug Verbosity = iota
	// Info for general informational messages.
	Info
	// Warning for conditions that deserve attention but are not failures.
	Warning
	// Error for failures of an operation.
	Error
	// Exception for captured error values (see logger.CaptureError).
	Exception
)

// String returns the stable display name of the verbosity.
func (v Verbosity) String() string {
	switch v {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Exception:
		return "EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

// SyslogPriority returns the syslog severity equivalent of the
// verbosity: Debug maps to LOG_DEBUG (7), Info to LOG_INFO (6),
// Warning to LOG_WARNING (4), and both Error and Exception to
// LOG_ERR (3).
func (v Verbosity) SyslogPriority() int {
	switch v {
	case Debug:
		return 7
	case Info:
		return 6
	case Warning:
		return 4
	default:
		return 3
	}
}

// ParseVerbosity converts a configuration string to a Verbosity.
// Matching is case-insensitive and accepts WARN as an alias of
// WARNING. Anything else is a configuration error, reported at the
// boundary rather than deferred to the first log call.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warning, nil
	case "ERROR":
		return Error, nil
	case "EXCEPTION":
		return Exception, nil
	default:
		return Info, fmt.Errorf("unknown verbosity %q", s)
	}
}
