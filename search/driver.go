package search

import (
	"sync"

	"github.com/automeka/boost-regex/backtrack"
	"github.com/automeka/boost-regex/interp"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
)

// scratch is the mutable per-search state pooled across concurrent
// searches of one immutable Program, following meta/engine.go's
// statePool/getSearchState/putSearchState pattern: a *program.Program is
// safe for concurrent read-only use, but each in-flight search needs its
// own backtracking stack.
type scratch struct {
	stack backtrack.Stack
}

// Driver is the top-level Search Driver (spec.md §4.1): it owns an
// immutable compiled Program and classification oracle, and exposes
// match/find over any number of input buffers, safely from multiple
// goroutines at once (each call draws its own scratch state from a
// sync.Pool).
type Driver struct {
	stats  Stats
	prog   *program.Program
	oracle oracle.Oracle
	config Config

	pool sync.Pool

	literalSet *acMatcher // optional Aho-Corasick accelerator, nil if unavailable
}

// NewDriver returns a Driver for prog. cfg is validated; an invalid
// Config panics, since it reflects a programming error in the caller, not
// a runtime condition.
func NewDriver(prog *program.Program, oc oracle.Oracle, cfg Config) *Driver {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	d := &Driver{prog: prog, oracle: oc, config: cfg}
	d.pool.New = func() any {
		return &scratch{stack: d.newStack()}
	}
	if cfg.EnableAhoCorasick {
		d.literalSet = buildACMatcher(prog)
	}
	return d
}

func (d *Driver) newStack() backtrack.Stack {
	if d.config.UseIterativeBacktracking {
		return backtrack.NewIterativeStack(d.config.MaxBacktrackFrames)
	}
	return backtrack.NewRecursiveStack(d.config.RecursiveMaxDepth)
}

func (d *Driver) getScratch() *scratch {
	s := d.pool.Get().(*scratch)
	s.stack.Reset()
	return s
}

func (d *Driver) putScratch(s *scratch) { d.pool.Put(s) }

// Stats returns a snapshot of the driver's execution counters.
func (d *Driver) Stats() Stats { return d.stats.Snapshot() }

// newMatcher builds a Matcher bound to this call's input/flags, reusing
// the pooled backtracking stack.
func (d *Driver) newMatcher(s *scratch, input []byte, flags interp.Flags) *interp.Matcher {
	m := interp.NewMatcher(d.prog, d.oracle, input, s.stack, flags)
	return m
}

// attempt runs one match_prefix at pos, recording stats and translating
// interp-level errors into the driver's Stats counters.
func (d *Driver) attempt(m *interp.Matcher, pos int) bool {
	before := m.StateCount()
	m.SetSearchBase(pos)
	ok := m.MatchPrefix()
	d.stats.recordAttempt(m.StateCount() - before)
	switch m.Err() {
	case interp.ErrComplexityExceeded:
		d.stats.recordComplexityExceeded()
	case interp.ErrMemoryExhausted:
		d.stats.recordMemoryExhausted()
	}
	return ok
}

// Match implements spec.md §4.1's match(flags): true iff the pattern
// matches the entire input from base to last.
func (d *Driver) Match(input []byte, flags interp.Flags) (bool, []interp.Capture) {
	s := d.getScratch()
	defer d.putScratch(s)

	m := d.newMatcher(s, input, flags)
	if !d.attempt(m, 0) {
		return false, nil
	}
	caps := m.Captures()
	if caps[0].Last != len(input) {
		return false, nil
	}
	return true, cloneCaptures(caps)
}

func cloneCaptures(c []interp.Capture) []interp.Capture {
	out := make([]interp.Capture, len(c))
	copy(out, c)
	return out
}
