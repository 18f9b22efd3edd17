// Package config builds loggers from JSON documents.
//
// Build parses the document with valyala/fastjson and validates
// everything up front: verbosity strings, templates, handler types,
// and targets all fail at construction time, so a logger that builds
// is a logger that logs. When a later handler in the document fails,
// the sinks already opened for earlier handlers are closed before the
// error is returned.
package config
