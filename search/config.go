// Package search implements the top-level Search Driver (component S) of
// spec.md §4.1: the match/find entry points that position the input
// cursor and invoke the interpreter via a restart strategy chosen from the
// compiled program.
package search

import "fmt"

// Config controls the search driver's resource limits and backtracking
// strategy selection. Grounded on meta/config.go's Config/DefaultConfig
// doc-comment style and field-by-field default documentation.
//
// Example:
//
//	cfg := search.DefaultConfig()
//	cfg.UseIterativeBacktracking = false // exercise the recursive strategy
//	driver := search.NewDriver(prog, oracle.ASCII{}, cfg)
type Config struct {
	// MaxStateMultiplier is the scale for input length × program size in
	// seeding max_state_count (spec.md §4.5). Validate checks it, but the
	// driver does not pass it to the interpreter: interp.NewMatcher always
	// seeds max_state_count as input length × program size + 10000.
	// Default: 1
	MaxStateMultiplier int

	// MinStateBudget is the floor for the work budget, so short inputs or
	// tiny programs still get a usable one. Validate checks it, but, as
	// with MaxStateMultiplier, the driver does not pass it to the
	// interpreter, whose floor is fixed at 10000.
	// Default: 10000
	MinStateBudget int

	// MaxBacktrackFrames bounds the iterative backtracking stack; 0 means
	// unbounded (limited only by available memory).
	// Default: 0
	MaxBacktrackFrames int

	// UseIterativeBacktracking selects backtrack.IterativeStack (true,
	// spec.md §9's preferred strategy) or backtrack.RecursiveStack
	// (false).
	// Default: true
	UseIterativeBacktracking bool

	// RecursiveMaxDepth bounds backtrack.RecursiveStack when
	// UseIterativeBacktracking is false.
	// Default: backtrack.DefaultMaxDepth
	RecursiveMaxDepth int

	// EnableAhoCorasick lets restart_any/restart_word delegate to a
	// prebuilt Aho-Corasick automaton over the program's start-literal set
	// when one is available, instead of a byte-bitmap scan.
	// Default: true
	EnableAhoCorasick bool

	// EnableSIMD is not read by any scan: indexByte picks its word-at-a-time
	// path from a CPU-feature probe (memscan.go), and the start-bitmap scan
	// and the KMP scan are byte-by-byte loops.
	// Default: true
	EnableSIMD bool
}

// DefaultConfig returns the recommended Config.
func DefaultConfig() Config {
	return Config{
		MaxStateMultiplier:       1,
		MinStateBudget:           10000,
		MaxBacktrackFrames:       0,
		UseIterativeBacktracking: true,
		RecursiveMaxDepth:        0,
		EnableAhoCorasick:        true,
		EnableSIMD:               true,
	}
}

// Validate reports a descriptive error if the configuration is
// unworkable, rather than letting a driver silently misbehave.
func (c Config) Validate() error {
	if c.MaxStateMultiplier < 0 {
		return fmt.Errorf("search: MaxStateMultiplier must be >= 0, got %d", c.MaxStateMultiplier)
	}
	if c.MinStateBudget < 0 {
		return fmt.Errorf("search: MinStateBudget must be >= 0, got %d", c.MinStateBudget)
	}
	if c.MaxBacktrackFrames < 0 {
		return fmt.Errorf("search: MaxBacktrackFrames must be >= 0, got %d", c.MaxBacktrackFrames)
	}
	if c.RecursiveMaxDepth < 0 {
		return fmt.Errorf("search: RecursiveMaxDepth must be >= 0, got %d", c.RecursiveMaxDepth)
	}
	return nil
}
