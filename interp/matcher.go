package interp

import (
	"github.com/automeka/boost-regex/backtrack"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
)

// minStateBudget is the floor added to the input-length × program-size
// product when seeding max_state_count (spec.md §4.5). Input is always
// random-access here (a Go byte slice), so the "fixed constant" branch of
// §4.5 never applies; this floor instead guards tiny inputs/programs from
// an unreasonably small budget.
const minStateBudget = 10000

// Matcher holds the per-attempt state spec.md §3 calls "Matcher state": a
// prefix attempt against one Program over one immutable input buffer. A
// Matcher is reused across the restart positions a Search Driver tries in
// one find/match call, but is not safe for concurrent use (spec.md §5).
type Matcher struct {
	prog   *program.Program
	oracle oracle.Oracle
	input  []byte

	base, last int
	position   int
	searchBase int
	restart    int
	pstate     program.NodeID

	captures []Capture
	flags    Flags
	icase    bool

	hasFoundMatch   bool
	hasPartialMatch bool

	stateCount    int
	maxStateCount int

	stack backtrack.Stack
	err   error

	// repCounts tracks completed iterations per active repetition node
	// (spec.md §4.4); keyed by node id since a single Matcher attempt
	// never has two simultaneously-active instances of the same static
	// rep node (this core does not support recursive subpatterns).
	repCounts map[program.NodeID]int

	// POSIX leftmost-longest bookkeeping (spec.md §9's maybe_assign):
	// the best candidate match found so far, kept so `match` can report
	// false and keep searching without losing it.
	best     []Capture
	haveBest bool
}

// NewMatcher constructs a Matcher over input for prog, using oracle for
// character classification and stack as the backtracking facility. flags
// are the match-time modifier bits (spec.md §6).
func NewMatcher(prog *program.Program, oc oracle.Oracle, input []byte, stack backtrack.Stack, flags Flags) *Matcher {
	m := &Matcher{
		prog:   prog,
		oracle: oc,
		input:  input,
		base:   0,
		last:   len(input),
		icase:  prog.ICaseFlag(),
		flags:  flags,
		stack:  stack,
	}
	m.maxStateCount = len(input)*prog.Size() + minStateBudget
	m.captures = make([]Capture, prog.MarkCount())
	return m
}

// Err returns the error from the most recent MatchPrefix call, or nil if
// it completed without one (spec.md §7: a plain unmatched attempt is not
// an error, only memory_exhausted/complexity_exceeded/invalid_program are).
func (m *Matcher) Err() error { return m.err }

// Captures returns the capture array of the most recent attempt.
func (m *Matcher) Captures() []Capture { return m.captures }

// Position returns the matcher's current cursor.
func (m *Matcher) Position() int { return m.position }

// Base returns the fixed start of the input.
func (m *Matcher) Base() int { return m.base }

// Last returns the fixed end of the input.
func (m *Matcher) Last() int { return m.last }

// SearchBase returns search_base, the start of the current find attempt
// (spec.md §3), used by restart_continue.
func (m *Matcher) SearchBase() int { return m.searchBase }

// StateCount returns the cumulative number of opcode dispatches performed
// by this matcher across every MatchPrefix call so far, for the search
// driver's Stats bookkeeping.
func (m *Matcher) StateCount() int { return m.stateCount }

// SetFixedMatch installs a restart_fixed_lit hit directly into capture 0,
// bypassing interpreter dispatch entirely: the KMP hit over a fixed
// literal body already IS the match (spec.md §4.1).
func (m *Matcher) SetFixedMatch(first, last int) {
	m.resetCaptures()
	m.captures[0] = Capture{First: first, Last: last, Matched: true}
	m.hasFoundMatch = true
	m.err = nil
	m.position = last
}

// SetSearchBase sets search_base and position for the next prefix attempt
// (spec.md §4.1's find procedure positions these before invoking
// match_prefix; the Search Driver owns that choice).
func (m *Matcher) SetSearchBase(pos int) {
	m.searchBase = pos
	m.position = pos
}

// SetFlags replaces the match-time flags bitset.
func (m *Matcher) SetFlags(f Flags) { m.flags = f }

// Flags returns the current match-time flags bitset.
func (m *Matcher) Flags() Flags { return m.flags }

// resetCaptures clears the capture array to all-unmatched, sizing it to
// the program's mark count (spec.md §4.1's match/find reset step).
func (m *Matcher) resetCaptures() {
	if cap(m.captures) < m.prog.MarkCount() {
		m.captures = make([]Capture, m.prog.MarkCount())
	} else {
		m.captures = m.captures[:m.prog.MarkCount()]
		for i := range m.captures {
			m.captures[i] = Capture{}
		}
	}
	m.haveBest = false
}

// --- byte-cursor helpers -------------------------------------------------

func (m *Matcher) atBase() bool { return m.position == m.base }
func (m *Matcher) atLast() bool { return m.position == m.last }

// byteAt returns input[pos], translated under the program's case-folding,
// and whether pos is in range.
func (m *Matcher) byteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= len(m.input) {
		return 0, false
	}
	return m.oracle.Translate(m.input[pos], m.icase), true
}

// rawByteAt returns input[pos] untranslated.
func (m *Matcher) rawByteAt(pos int) (byte, bool) {
	if pos < 0 || pos >= len(m.input) {
		return 0, false
	}
	return m.input[pos], true
}

// prevAvailable reports whether the byte immediately before position is
// legible: either position is strictly inside [0, len(input)], or the
// caller asserted availability via match_prev_avail (spec.md §6).
func (m *Matcher) prevAvailable() bool {
	if m.position > 0 {
		return true
	}
	return m.flags.Has(MatchPrevAvail)
}

// isWord reports whether b is a word character per the oracle.
func (m *Matcher) isWord(b byte) bool {
	return m.oracle.IsClass(b, oracle.ClassWord)
}

// wordBefore/wordAt classify the characters surrounding position for the
// word-boundary family of opcodes (spec.md §4.2).
func (m *Matcher) wordBefore() bool {
	if m.position <= 0 {
		if !m.prevAvailable() {
			return false
		}
		b, ok := m.rawByteAt(m.position - 1)
		return ok && m.isWord(b)
	}
	b, ok := m.rawByteAt(m.position - 1)
	return ok && m.isWord(b)
}

func (m *Matcher) wordAt() bool {
	b, ok := m.rawByteAt(m.position)
	return ok && m.isWord(b)
}

// --- repetition bookkeeping ----------------------------------------------

func (m *Matcher) resetRepCounts() {
	if len(m.repCounts) > 0 {
		m.repCounts = make(map[program.NodeID]int)
	}
}

func (m *Matcher) repCount(id program.NodeID) int {
	return m.repCounts[id]
}

func (m *Matcher) setRepCount(id program.NodeID, n int) {
	if m.repCounts == nil {
		m.repCounts = make(map[program.NodeID]int)
	}
	m.repCounts[id] = n
}

// pushPositionRestore records the current position so a later backtrack
// past this point restores it, even though the opcodes run in between may
// not themselves push any frame (spec.md §5's position_restore frame).
func (m *Matcher) pushPositionRestore() bool {
	if !m.stack.Push(backtrack.Frame{Kind: backtrack.KindPositionRestore, Position: m.position}) {
		m.err = ErrMemoryExhausted
		return false
	}
	return true
}

// matchPrimitiveUnit tests whether one repeatable unit of a specialized
// repetition node (dot_repeat_fast/slow, char_repeat, set_repeat,
// long_set_repeat) matches at the current position, without mutating
// state. It returns the number of bytes that unit would consume.
func (m *Matcher) matchPrimitiveUnit(n *program.Node) (consumed int, ok bool) {
	switch n.Op {
	case program.OpDotRepeatFast, program.OpDotRepeatSlow:
		b, have := m.rawByteAt(m.position)
		if !have {
			return 0, false
		}
		if m.oracle.IsSeparator(b) && m.flags.Has(MatchNotDotNewline) {
			return 0, false
		}
		if b == 0 && m.flags.Has(MatchNotDotNull) {
			return 0, false
		}
		return 1, true
	case program.OpCharRepeat:
		b, have := m.byteAt(m.position)
		if !have || b != m.oracle.Translate(n.Char, m.icase) {
			return 0, false
		}
		return 1, true
	case program.OpSetRepeat:
		b, have := m.byteAt(m.position)
		if !have || !n.Set.Contains(b) {
			return 0, false
		}
		return 1, true
	case program.OpLongSetRepeat:
		return n.LongSet.Match(m.input, m.position)
	default:
		return 0, false
	}
}
