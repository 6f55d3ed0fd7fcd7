package search

import "sync/atomic"

// Stats tracks search-driver execution counters for debugging and tuning.
// Stats must be the first field of any struct embedding it, matching
// meta/engine.go's Engine.stats convention, so atomic operations on its
// uint64 fields stay aligned on 32-bit platforms.
type Stats struct {
	// Attempts counts match_prefix invocations across all restart
	// strategies.
	Attempts uint64
	// Dispatches counts total opcode dispatches (sum of every attempt's
	// state_count).
	Dispatches uint64
	// ComplexityExceeded counts attempts aborted by the work-budget guard
	// (spec.md §4.5).
	ComplexityExceeded uint64
	// MemoryExhausted counts attempts aborted by a full backtracking
	// stack or exhausted recursion depth.
	MemoryExhausted uint64
}

func (s *Stats) recordAttempt(dispatches int) {
	atomic.AddUint64(&s.Attempts, 1)
	atomic.AddUint64(&s.Dispatches, uint64(dispatches))
}

func (s *Stats) recordComplexityExceeded() {
	atomic.AddUint64(&s.ComplexityExceeded, 1)
}

func (s *Stats) recordMemoryExhausted() {
	atomic.AddUint64(&s.MemoryExhausted, 1)
}

// Snapshot returns a copy of the current counters, safe to read while a
// Driver is in concurrent use.
func (s *Stats) Snapshot() Stats {
	return Stats{
		Attempts:           atomic.LoadUint64(&s.Attempts),
		Dispatches:         atomic.LoadUint64(&s.Dispatches),
		ComplexityExceeded: atomic.LoadUint64(&s.ComplexityExceeded),
		MemoryExhausted:    atomic.LoadUint64(&s.MemoryExhausted),
	}
}
