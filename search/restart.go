package search

import (
	"github.com/automeka/boost-regex/interp"
	"github.com/automeka/boost-regex/oracle"
	"github.com/automeka/boost-regex/program"
)

// Iter drives repeated find() calls over one input buffer, carrying the
// continuation state spec.md §4.1 describes across calls: the resume
// position, the match_init bookkeeping, and the empty-match avoidance
// step. One Iter owns one pooled Matcher/backtracking-stack pair for its
// lifetime; Close returns that scratch state to the Driver's pool.
type Iter struct {
	d     *Driver
	s     *scratch
	m     *interp.Matcher
	input []byte
	flags interp.Flags

	initialized bool
	prevEnd     int
	prevEmpty   bool
}

// NewIter returns an Iter ready for repeated Next calls over input, per
// spec.md §4.1's find(flags).
func (d *Driver) NewIter(input []byte, flags interp.Flags) *Iter {
	s := d.getScratch()
	return &Iter{d: d, s: s, m: d.newMatcher(s, input, flags), input: input, flags: flags}
}

// Close releases the Iter's scratch state back to the Driver's pool. An
// Iter must not be used after Close.
func (it *Iter) Close() { it.d.putScratch(it.s) }

// Next advances to the next match, per spec.md §4.1's find(flags)
// procedure: first call starts at base; subsequent calls resume from the
// previous match's end, stepping past an empty match unless
// match_not_null forbids it.
func (it *Iter) Next() ([]interp.Capture, bool) {
	last := len(it.input)
	flags := it.flags
	var pos int

	if !it.initialized {
		pos = it.m.Base()
		it.initialized = true
	} else {
		pos = it.prevEnd
		if it.prevEmpty && !flags.Has(interp.MatchNotNull) {
			if pos >= last {
				return nil, false
			}
			pos++
		}
		if pos != it.m.Base() {
			flags |= interp.MatchPrevAvail
		}
		flags |= interp.MatchInit
	}
	it.m.SetFlags(flags)

	restartType := it.d.prog.RestartType()
	if flags.Has(interp.MatchContinuous) {
		restartType = program.RestartContinue
	}

	if !it.d.runRestart(restartType, it.m, it.input, pos) {
		return nil, false
	}
	caps := it.m.Captures()
	it.prevEnd = caps[0].Last
	it.prevEmpty = caps[0].Last == caps[0].First
	return cloneCaptures(caps), true
}

// Find returns the first match of the pattern in input at or after
// position 0, per spec.md §4.1's find(flags). For repeated searches over
// the same input, NewIter avoids re-acquiring scratch state per call.
func (d *Driver) Find(input []byte, flags interp.Flags) ([]interp.Capture, bool) {
	it := d.NewIter(input, flags)
	defer it.Close()
	return it.Next()
}

// runRestart dispatches to the restart strategy named by rt, forming the
// six procedures of spec.md §4.1.
func (d *Driver) runRestart(rt program.RestartType, m *interp.Matcher, input []byte, pos int) bool {
	switch rt {
	case program.RestartAny:
		return d.restartAny(m, input, pos)
	case program.RestartWord:
		return d.restartWord(m, input, pos)
	case program.RestartLine:
		return d.restartLine(m, input, pos)
	case program.RestartBuf:
		return d.restartBuf(m, pos)
	case program.RestartContinue:
		return d.restartContinue(m, pos)
	case program.RestartLit:
		return d.restartLit(m, input, pos, false)
	case program.RestartFixedLit:
		return d.restartLit(m, input, pos, true)
	default:
		return d.restartAny(m, input, pos)
	}
}

// nextStart returns the next position >= pos whose byte can begin a match
// per the program's start-character bitmap, or -1 if none remains before
// the end of input. It prefers the Aho-Corasick accelerator
// (SPEC_FULL.md's DOMAIN STACK) over a linear bitmap scan when one is
// available for this program.
func (d *Driver) nextStart(input []byte, pos int) int {
	if pos >= len(input) {
		return -1
	}
	if d.prog.AnyStart() {
		return pos
	}
	if d.literalSet != nil && d.config.EnableAhoCorasick {
		return d.literalSet.find(input, pos)
	}
	if idx := indexAny(input[pos:], d.prog.CanStartWith); idx >= 0 {
		return pos + idx
	}
	return -1
}

// restartAny scans forward via the start-character bitmap, attempting
// match_prefix at each candidate; if the scan exhausts the input and the
// pattern can match empty, one final attempt is made at last (spec.md
// §4.1, restart_any).
func (d *Driver) restartAny(m *interp.Matcher, input []byte, pos int) bool {
	last := len(input)
	for p := pos; p <= last; {
		cand := d.nextStart(input, p)
		if cand < 0 {
			break
		}
		if d.attempt(m, cand) {
			return true
		}
		p = cand + 1
	}
	if d.prog.CanBeNull() {
		return d.attempt(m, last)
	}
	return false
}

// restartWord advances to each word-start boundary (a transition from a
// non-word byte to a word byte), attempting match_prefix at each one,
// including the current position if it already qualifies (spec.md §4.1,
// restart_word). The start-character bitmap accelerator doubles as a
// word-byte prefilter here, since a restart_word program's start set is
// exactly its admissible word-start bytes.
func (d *Driver) restartWord(m *interp.Matcher, input []byte, pos int) bool {
	last := len(input)
	for p := pos; p <= last; {
		cand := d.nextStart(input, p)
		if cand < 0 || cand >= last {
			break
		}
		prevWord := cand > 0 && d.oracle.IsClass(input[cand-1], oracle.ClassWord)
		if !prevWord {
			if d.attempt(m, cand) {
				return true
			}
		}
		p = cand + 1
	}
	if d.prog.CanBeNull() {
		return d.attempt(m, last)
	}
	return false
}

// restartLine attempts at the current position, then repeatedly advances
// past the next '\n' and attempts at each resulting line start (spec.md
// §4.1, restart_line).
func (d *Driver) restartLine(m *interp.Matcher, input []byte, pos int) bool {
	last := len(input)
	for p := pos; p <= last; {
		if d.attempt(m, p) {
			return true
		}
		nl := indexByte(input[p:], '\n')
		if nl < 0 {
			break
		}
		p += nl + 1
	}
	return false
}

// restartBuf attempts only at base, and only if match_not_bob is clear and
// the find call's resume position pos is still base (spec.md §4.1,
// restart_buf).
func (d *Driver) restartBuf(m *interp.Matcher, pos int) bool {
	if pos != m.Base() || m.Flags().Has(interp.MatchNotBOB) {
		return false
	}
	return d.attempt(m, m.Base())
}

// restartContinue attempts only at pos (the find call's resume position,
// standing in for search_base per spec.md §4.1, restart_continue).
func (d *Driver) restartContinue(m *interp.Matcher, pos int) bool {
	return d.attempt(m, pos)
}

// restartLit implements restart_lit and restart_fixed_lit (spec.md §4.1):
// a KMP scan over the program's literal prefix/body. fixedLit programs
// report the literal's span directly; lit programs rewind to the
// literal's start and verify with a full match_prefix, resuming the KMP
// scan from state 0 on failure (spec.md §9's open question: the
// conservative linear rewind is kept, not "improved"). When the scan
// reaches end of input with a nonzero KMP state and match_partial is set,
// one final attempt is made at the rewound partial-match position.
func (d *Driver) restartLit(m *interp.Matcher, input []byte, pos int, fixedLit bool) bool {
	table := d.prog.KMPInfo()
	for p := pos; p <= len(input); {
		hit, state, found := kmpScan(table, input, p)
		if !found {
			if m.Flags().Has(interp.MatchPartial) && state > 0 {
				rewind := len(input) - state
				if d.attempt(m, rewind) {
					return true
				}
			}
			return false
		}
		if fixedLit {
			m.SetFixedMatch(hit, hit+len(table.Literal))
			return true
		}
		if d.attempt(m, hit) {
			return true
		}
		p = hit + 1
	}
	return false
}
