package interp

import "errors"

// Errors surfaced by the core per spec.md §7. These are distinct from
// ordinary match failures, which are reported as a plain false return
// through MatchPrefix/Matcher.Match, never as an error.
var (
	// ErrMemoryExhausted means the backtracking stack could not grow
	// (iterative strategy) or the recursion-depth guard tripped
	// (recursive strategy). Matcher state is undefined afterward.
	ErrMemoryExhausted = errors.New("interp: memory exhausted")

	// ErrComplexityExceeded means state_count exceeded max_state_count
	// (spec.md §4.5); equivalent to memory exhaustion for the caller.
	ErrComplexityExceeded = errors.New("interp: complexity exceeded")

	// ErrInvalidProgram means dispatch encountered an opcode outside the
	// handler table. This is a defensive check for a malformed Program,
	// never raised by a program built through program.Builder.
	ErrInvalidProgram = errors.New("interp: invalid program")
)
