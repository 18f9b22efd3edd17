// Package logger is the caller-facing surface of lager.
//
// A Logger holds a name, a default template, context fields, and an
// ordered list of handlers. Each log call synchronously builds one
// record, capturing the callsite and re-evaluating lazy context
// providers, then renders and writes it to every handler whose
// threshold admits the record's verbosity. One handler's failure is
// reported to the fallback writer and never stops the others, and
// never propagates into the calling code.
//
// Loggers are built with the fluent Builder:
//
//	log := logger.NewBuilder().
//		WithName("app").
//		WithHandlers(handler.NewStdoutHandler(core.Info)).
//		WithContext(logger.RunID()).
//		Build()
//	log.Info("listening", logger.Int("port", 8080))
//
// Package-level functions (Debug, Info, Warning, Error, CaptureError,
// ...) delegate to a process-wide logger that is built lazily on
// first use: a stdout handler filtered by $LAGER_VERBOSITY, Info when
// unset. SetDefault replaces it.
package logger
