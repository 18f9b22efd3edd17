// Package formatter turns records into output lines.
//
// The central type is Template, a compiled format string with named
// placeholders such as "{time} {verbosity} {name}: {message}". A
// placeholder resolves against the record's context fields first
// (newest wins) and then against the built-in vocabulary; a key found
// in neither fails the render with ErrUnknownPlaceholder, since a
// template referencing a key that never exists is a configuration
// bug rather than a condition to mask.
//
// JSONFormatter is an alternative Formatter producing one JSON object
// per record, built by hand into a pooled buffer so the hot path does
// not allocate.
//
// Formatters return a single unterminated line; the trailing newline
// belongs to the handler that writes it.
package formatter
