package handler

import "sync/atomic"

// Stats tracks handler emit counters
type Stats struct {
	// EmittedTotal counts lines written to the sink
	EmittedTotal uint64
	// FailedTotal counts emits that returned an error
	FailedTotal uint64
}

// IncrementEmitted atomically increments the emitted counter
func (s *Stats) IncrementEmitted() {
	atomic.AddUint64(&s.EmittedTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// GetEmitted returns the emitted count
func (s *Stats) GetEmitted() uint64 {
	return atomic.LoadUint64(&s.EmittedTotal)
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return atomic.LoadUint64(&s.FailedTotal)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.EmittedTotal, 0)
	atomic.StoreUint64(&s.FailedTotal, 0)
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Emitted uint64
	Failed  uint64
}

// GetSnapshot returns a snapshot of current counters
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Emitted: s.GetEmitted(),
		Failed:  s.GetFailed(),
	}
}
