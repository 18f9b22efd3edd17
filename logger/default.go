package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/handler"
)

// VerbosityEnv names the environment variable the default logger
// reads its minimum verbosity from.
const VerbosityEnv = "LAGER_VERBOSITY"

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// initDefault builds the process-wide logger on first use: a stdout
// console handler filtered by $LAGER_VERBOSITY, Info when unset. A
// lazy initializer must not crash, so an invalid value produces a
// meta-warning and falls back to Info.
func initDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		return // SetDefault won the race
	}

	min := core.Info
	if s := os.Getenv(VerbosityEnv); s != "" {
		v, err := core.ParseVerbosity(s)
		if err != nil {
			core.Fallback("default logger", fmt.Errorf("%s: %w", VerbosityEnv, err))
		} else {
			min = v
		}
	}

	defaultLogger = NewBuilder().
		WithName("lager").
		WithHandlers(handler.NewStdoutHandler(min)).
		Build()
}

// Default returns the process-wide logger, building it on first use.
func Default() *Logger {
	defaultOnce.Do(initDefault)
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultOnce.Do(func() {}) // suppress the lazy initializer
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. They
// call the internal log path directly so the callsite skip matches
// the method path and {source} still points at user code.

// Log logs a message at the given verbosity using the default logger
func Log(v core.Verbosity, msg string, fields ...core.Field) {
	Default().log(v, msg, fields, 0)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().log(core.Debug, msg, fields, 0)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().log(core.Info, msg, fields, 0)
}

// Warning logs a warning message using the default logger
func Warning(msg string, fields ...core.Field) {
	Default().log(core.Warning, msg, fields, 0)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().log(core.Error, msg, fields, 0)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().log(core.Debug, fmt.Sprintf(format, args...), nil, 0)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().log(core.Info, fmt.Sprintf(format, args...), nil, 0)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...interface{}) {
	Default().log(core.Warning, fmt.Sprintf(format, args...), nil, 0)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().log(core.Error, fmt.Sprintf(format, args...), nil, 0)
}

// CaptureError logs a caught error value using the default logger.
// A nil error is a no-op.
func CaptureError(err error, fields ...core.Field) {
	if err == nil {
		return
	}
	Default().log(core.Exception, err.Error(), fields, 0)
}

// With creates a child of the default logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
