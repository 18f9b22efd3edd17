// Package core defines the shared types used across lager.
//
// It provides the Verbosity type, a totally ordered severity used both
// to tag records and to filter them at each handler, the Record type
// that snapshots a single log event, and the Field type for key-value
// context attached to records.
//
// Record objects are pooled via sync.Pool to keep the log call path
// allocation-free. Callers get a Record with NewRecord and must return
// it with FreeRecord once every handler has consumed it. The pool
// pre-allocates the Context slice with capacity 8, which covers most
// log calls without triggering a slice growth.
//
// Field encodes values into fixed-size numeric slots (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. LazyType defers a value to a zero-argument
// provider that is invoked once, at record construction.
package core
